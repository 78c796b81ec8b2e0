package inmovilla_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/port"
)

var (
	_ port.PropertyRepositoryPort        = (*PropertyRepository)(nil)
	_ port.PropertyDetailsRepositoryPort = (*PropertyDetailsRepository)(nil)
)

// PropertyRepository реализует PropertyRepositoryPort через процесс "paginacion".
type PropertyRepository struct {
	client *Client
}

func NewPropertyRepository(client *Client) *PropertyRepository {
	return &PropertyRepository{client: client}
}

func (r *PropertyRepository) FindAll(ctx context.Context, offset, limit int, filter domain.PropertyFilter) (*domain.PropertyListResult, error) {
	section, err := r.client.process(ctx, processList, offset, limit, RenderWhere(filter), "")
	if err != nil {
		return nil, err
	}

	result := &domain.PropertyListResult{Items: []domain.PropertySummary{}}
	if len(section) == 0 {
		return result, nil
	}

	var meta paginationMeta
	if err := json.Unmarshal(section[0], &meta); err != nil {
		return nil, fmt.Errorf("failed to decode pagination metadata: %w", err)
	}
	if result.Total, err = scalarInt(meta.Total); err != nil {
		return nil, fmt.Errorf("invalid pagination total: %w", err)
	}

	for i, raw := range section[1:] {
		item, err := decodeSummary(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode property #%d: %w", i+1, err)
		}
		result.Items = append(result.Items, item)
	}
	return result, nil
}

func decodeSummary(raw json.RawMessage) (domain.PropertySummary, error) {
	var fields summaryFields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.PropertySummary{}, err
	}
	ref, err := scalarString(fields.Ref)
	if err != nil {
		return domain.PropertySummary{}, fmt.Errorf("ref: %w", err)
	}
	codOffer, err := scalarString(fields.CodOffer)
	if err != nil {
		return domain.PropertySummary{}, fmt.Errorf("cod_ofer: %w", err)
	}
	return domain.PropertySummary{Ref: ref, CodOffer: codOffer, Raw: raw}, nil
}

// PropertyDetailsRepository реализует PropertyDetailsRepositoryPort через процесс "ficha".
type PropertyDetailsRepository struct {
	client *Client
}

func NewPropertyDetailsRepository(client *Client) *PropertyDetailsRepository {
	return &PropertyDetailsRepository{client: client}
}

func (r *PropertyDetailsRepository) FindOneByCodOffer(ctx context.Context, codOffer string) (*domain.PropertyDetail, error) {
	section, err := r.client.process(ctx, processDetails, 1, 1, codOfferWhere(codOffer), "")
	if err != nil {
		return nil, err
	}
	if len(section) < 2 {
		return nil, fmt.Errorf("property details not found for cod_ofer %s", codOffer)
	}
	return &domain.PropertyDetail{CodOffer: codOffer, Raw: section[1]}, nil
}
