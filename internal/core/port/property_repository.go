package port

import (
	"context"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
)

// PropertyRepositoryPort - контракт для списка объектов Inmovilla ("paginacion").
type PropertyRepositoryPort interface {
	// FindAll возвращает не более limit объектов, начиная с позиции offset (с 1).
	FindAll(ctx context.Context, offset, limit int, filter domain.PropertyFilter) (*domain.PropertyListResult, error)
}

// PropertyDetailsRepositoryPort - контракт для полной карточки объекта ("ficha").
type PropertyDetailsRepositoryPort interface {
	FindOneByCodOffer(ctx context.Context, codOffer string) (*domain.PropertyDetail, error)
}
