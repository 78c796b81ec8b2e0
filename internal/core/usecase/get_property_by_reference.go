package usecase

import (
	"context"
	"fmt"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/contextkeys"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/port"
)

type GetPropertyByReferenceUseCase struct {
	properties port.PropertyRepositoryPort
	details    port.PropertyDetailsRepositoryPort
}

func NewGetPropertyByReferenceUseCase(
	properties port.PropertyRepositoryPort,
	details port.PropertyDetailsRepositoryPort,
) *GetPropertyByReferenceUseCase {
	return &GetPropertyByReferenceUseCase{
		properties: properties,
		details:    details,
	}
}

func (uc *GetPropertyByReferenceUseCase) Execute(ctx context.Context, reference string) (*domain.PropertyDetail, error) {
	reference = normalizeSearchValue(reference)
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "GetPropertyByReference",
		"reference": reference,
	})

	if reference == "" {
		return nil, domain.ErrMissingReference
	}
	if hasParamSeparator(reference) {
		ucLogger.Warn("Lookup rejected: separator in reference", nil)
		return nil, domain.ErrSeparatorInSearchValue
	}

	ucLogger.Debug("Use case started", nil)

	// Шаг 1: по ref находим cod_ofer. Нужна ровно одна запись с первой позиции.
	filter := domain.PropertyFilter{}.Equals(domain.FieldReference, reference)
	list, err := uc.properties.FindAll(ctx, domain.DefaultStart, 1, filter)
	if err != nil {
		ucLogger.Error("Failed to look up property by reference", err, nil)
		return nil, domain.NewUpstreamError("find property by reference", err)
	}

	if list.Total == 0 || len(list.Items) == 0 {
		ucLogger.Info("No property with this reference", nil)
		return nil, fmt.Errorf("%w with reference: %s", domain.ErrPropertyNotFound, reference)
	}

	codOffer := list.Items[0].CodOffer
	if codOffer == "" {
		err := fmt.Errorf("property %q has no %s", reference, domain.FieldCodOffer)
		ucLogger.Error("Inmovilla returned a property without cod_ofer", err, nil)
		return nil, domain.NewUpstreamError("find property by reference", err)
	}

	// Шаг 2: полная карточка по cod_ofer.
	details, err := uc.details.FindOneByCodOffer(ctx, codOffer)
	if err != nil {
		ucLogger.Error("Failed to fetch property details", err, port.Fields{"cod_ofer": codOffer})
		return nil, domain.NewUpstreamError("fetch property details", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"cod_ofer": codOffer})
	return details, nil
}
