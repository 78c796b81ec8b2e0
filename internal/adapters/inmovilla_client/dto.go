package inmovilla_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Названия процессов API Inmovilla.
const (
	processList    = "paginacion"
	processDetails = "ficha"
)

// paginationMeta - первый элемент секции "paginacion".
type paginationMeta struct {
	Position json.RawMessage `json:"posicion"`
	Elements json.RawMessage `json:"elementos"`
	Total    json.RawMessage `json:"total"`
}

// summaryFields - поля карточки, которые читает сервис. Остальные уходят клиенту как есть.
type summaryFields struct {
	Ref      json.RawMessage `json:"ref"`
	CodOffer json.RawMessage `json:"cod_ofer"`
}

// scalarString достает строку из JSON-скаляра: Inmovilla отдает коды
// то числом (55), то строкой ("55").
func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", raw)
	}
	return n.String(), nil
}

func scalarInt(raw json.RawMessage) (int, error) {
	s, err := scalarString(raw)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
