package usecase

import (
	"context"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
)

type findAllCall struct {
	offset, limit int
	filter        domain.PropertyFilter
}

type fakePropertyRepository struct {
	result *domain.PropertyListResult
	err    error
	calls  []findAllCall
}

func (f *fakePropertyRepository) FindAll(_ context.Context, offset, limit int, filter domain.PropertyFilter) (*domain.PropertyListResult, error) {
	f.calls = append(f.calls, findAllCall{offset: offset, limit: limit, filter: filter})
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeDetailsRepository struct {
	detail *domain.PropertyDetail
	err    error
	calls  []string
}

func (f *fakeDetailsRepository) FindOneByCodOffer(_ context.Context, codOffer string) (*domain.PropertyDetail, error) {
	f.calls = append(f.calls, codOffer)
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}
