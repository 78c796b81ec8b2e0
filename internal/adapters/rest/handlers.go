package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/contextkeys"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/contracts"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/port"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/port/usecases_port"
	"github.com/go-chi/chi/v5"
)

const maxRequestBodyBytes = 1 << 20

// BodyValidator проверяет тело запроса по JSON-схеме.
type BodyValidator interface {
	Validate(key string, body []byte) error
}

// PropertyHandler обслуживает /search и /property/{reference}.
type PropertyHandler struct {
	searchUC       usecases_port.SearchPropertiesUseCasePort
	getByRefUC     usecases_port.GetPropertyByReferenceUseCasePort
	validator      BodyValidator
	exposeUpstream bool
}

// NewPropertyHandler - конструктор. exposeUpstream = true добавляет текст ошибки Inmovilla в ответ 500.
func NewPropertyHandler(
	searchUC usecases_port.SearchPropertiesUseCasePort,
	getByRefUC usecases_port.GetPropertyByReferenceUseCasePort,
	validator BodyValidator,
	exposeUpstream bool,
) *PropertyHandler {
	return &PropertyHandler{
		searchUC:       searchUC,
		getByRefUC:     getByRefUC,
		validator:      validator,
		exposeUpstream: exposeUpstream,
	}
}

// SearchFromQuery обрабатывает GET /search?reference=&street=&start=&limit=
func (h *PropertyHandler) SearchFromQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := domain.SearchParams{
		Reference: query.Get("reference"),
		Street:    query.Get("street"),
		Start:     parseIntOrDefault(query.Get("start"), domain.DefaultStart),
		Limit:     parseIntOrDefault(query.Get("limit"), domain.DefaultLimit),
	}
	h.search(w, r, params)
}

// SearchFromBody обрабатывает POST /search с JSON-телом.
func (h *PropertyHandler) SearchFromBody(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SearchFromBody"})

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		logger.Warn("Failed to read request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var req SearchRequest
	if len(body) > 0 {
		if err := h.validator.Validate(contracts.SearchRequest, body); err != nil {
			logger.Warn("Search request body rejected", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := json.Unmarshal(body, &req); err != nil {
			logger.Warn("Failed to decode search request body", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	params := domain.SearchParams{
		Reference: rawScalar(req.Reference),
		Street:    rawScalar(req.Street),
		Start:     jsonIntOrDefault(req.Start, domain.DefaultStart),
		Limit:     jsonIntOrDefault(req.Limit, domain.DefaultLimit),
	}
	h.search(w, r, params)
}

func (h *PropertyHandler) search(w http.ResponseWriter, r *http.Request, params domain.SearchParams) {
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "SearchProperties",
		"start":   params.Start,
		"limit":   params.Limit,
	})
	handlerLogger.Debug("Processing search request", nil)

	result, err := h.searchUC.Execute(r.Context(), params)
	if err != nil {
		h.writeError(w, handlerLogger, err, "error searching properties", "")
		return
	}

	RespondWithJSON(w, http.StatusOK, SearchResponse{
		Success: true,
		Total:   result.Total,
		Results: result.Items,
	})
}

// GetPropertyByReference обрабатывает GET /property/{reference}
func (h *PropertyHandler) GetPropertyByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	// chi маршрутизирует по RawPath, если он есть, иначе по уже декодированному Path.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(reference); err == nil {
			reference = unescaped
		}
	}

	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":   "GetPropertyByReference",
		"reference": reference,
	})
	handlerLogger.Debug("Processing property request", nil)

	details, err := h.getByRefUC.Execute(r.Context(), reference)
	if err != nil {
		h.writeError(w, handlerLogger, err, "error fetching property details", reference)
		return
	}

	RespondWithJSON(w, http.StatusOK, PropertyResponse{
		Success:  true,
		Property: details,
	})
}

// writeError переводит ошибку use case в HTTP-статус и текст ответа.
func (h *PropertyHandler) writeError(w http.ResponseWriter, logger port.LoggerPort, err error, upstreamMessage, reference string) {
	switch {
	case errors.Is(err, domain.ErrMissingSearchParameter):
		WriteJSONError(w, http.StatusBadRequest, "at least one search parameter is required (reference or street)")
	case errors.Is(err, domain.ErrMissingReference):
		WriteJSONError(w, http.StatusBadRequest, "property reference is required")
	case errors.Is(err, domain.ErrSeparatorInSearchValue):
		WriteJSONError(w, http.StatusBadRequest, "search values must not contain ';'")
	case errors.Is(err, domain.ErrValidation):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, fmt.Sprintf("no property found with reference: %s", reference))
	default:
		logger.Error("Request failed", err, nil)
		message := upstreamMessage
		var upstream *domain.UpstreamError
		if h.exposeUpstream && errors.As(err, &upstream) && upstream.Cause != nil {
			message += ": " + upstream.Cause.Error()
		}
		WriteJSONError(w, http.StatusInternalServerError, message)
	}
}
