package usecases_port

import (
	"context"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
)

type GetPropertyByReferenceUseCasePort interface {
	Execute(ctx context.Context, reference string) (*domain.PropertyDetail, error)
}
