package rest

import (
	"encoding/json"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
)

// SearchRequest - тело POST /search. Все поля принимаются и числом, и строкой.
type SearchRequest struct {
	Reference json.RawMessage `json:"reference"`
	Street    json.RawMessage `json:"street"`
	Start     json.RawMessage `json:"start"`
	Limit     json.RawMessage `json:"limit"`
}

// SearchResponse - ответ на /search. Элементы results - объекты Inmovilla без изменений.
type SearchResponse struct {
	Success bool                     `json:"success"`
	Total   int                      `json:"total"`
	Results []domain.PropertySummary `json:"results"`
}

// PropertyResponse - ответ на /property/{reference}.
type PropertyResponse struct {
	Success  bool                   `json:"success"`
	Property *domain.PropertyDetail `json:"property"`
}

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}
