package domain

import (
	"errors"
	"fmt"
)

// Категории ошибок, по которым REST-адаптер выбирает HTTP-статус.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream request failed")
)

// Конкретные ошибки use cases. Каждая оборачивает свою категорию.
var (
	ErrMissingSearchParameter = fmt.Errorf("%w: at least one search parameter is required (reference or street)", ErrValidation)
	ErrMissingReference       = fmt.Errorf("%w: property reference is required", ErrValidation)
	ErrPropertyNotFound       = fmt.Errorf("%w: no property found", ErrNotFound)
	ErrSeparatorInSearchValue = fmt.Errorf("%w: search values must not contain ';'", ErrValidation)
)

// UpstreamError - ошибка при обращении к API Inmovilla.
// errors.Is(err, ErrUpstream) == true, Cause хранит исходную ошибку клиента.
type UpstreamError struct {
	Op    string
	Cause error
}

func NewUpstreamError(op string, cause error) *UpstreamError {
	return &UpstreamError{Op: op, Cause: cause}
}

func (e *UpstreamError) Error() string {
	if e.Cause == nil {
		return e.Op + ": " + ErrUpstream.Error()
	}
	return e.Op + ": " + e.Cause.Error()
}

func (e *UpstreamError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Cause}
}
