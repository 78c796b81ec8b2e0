package usecases_port

import (
	"context"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
)

type SearchPropertiesUseCasePort interface {
	Execute(ctx context.Context, params domain.SearchParams) (*domain.PropertyListResult, error)
}
