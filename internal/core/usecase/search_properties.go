package usecase

import (
	"context"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/contextkeys"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/port"
)

type SearchPropertiesUseCase struct {
	properties port.PropertyRepositoryPort
}

func NewSearchPropertiesUseCase(properties port.PropertyRepositoryPort) *SearchPropertiesUseCase {
	return &SearchPropertiesUseCase{properties: properties}
}

func (uc *SearchPropertiesUseCase) Execute(ctx context.Context, params domain.SearchParams) (*domain.PropertyListResult, error) {
	reference := normalizeSearchValue(params.Reference)
	street := normalizeSearchValue(params.Street)

	filter := domain.PropertyFilter{}
	if reference != "" {
		filter = filter.Equals(domain.FieldReference, reference)
	}
	if street != "" {
		filter = filter.Equals(domain.FieldStreet, street)
	}

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "SearchProperties",
		"reference": reference,
		"street":    street,
		"start":     params.Start,
		"limit":     params.Limit,
	})

	if filter.IsEmpty() {
		ucLogger.Warn("Search rejected: no search parameters", nil)
		return nil, domain.ErrMissingSearchParameter
	}
	if hasParamSeparator(reference, street) {
		ucLogger.Warn("Search rejected: separator in search value", nil)
		return nil, domain.ErrSeparatorInSearchValue
	}

	ucLogger.Debug("Use case started", nil)

	result, err := uc.properties.FindAll(ctx, params.Start, params.Limit, filter)
	if err != nil {
		ucLogger.Error("Property repository returned an error", err, nil)
		return nil, domain.NewUpstreamError("search properties", err)
	}
	if result.Items == nil {
		result.Items = []domain.PropertySummary{}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total":         result.Total,
		"items_on_page": len(result.Items),
	})
	return result, nil
}
