package domain

import "encoding/json"

// Значения пагинации по умолчанию. Нумерация позиций у Inmovilla начинается с 1.
const (
	DefaultStart = 1
	DefaultLimit = 10
)

// SearchParams - входные параметры поиска объектов.
type SearchParams struct {
	Reference string
	Street    string
	Start     int
	Limit     int
}

// PropertySummary - карточка объекта из списка Inmovilla.
// Сервис читает только ref и cod_ofer, остальное отдается клиенту как есть через Raw.
type PropertySummary struct {
	Ref      string
	CodOffer string
	Raw      json.RawMessage
}

// MarshalJSON отдает исходный JSON объекта без изменений.
func (p PropertySummary) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	return json.Marshal(map[string]string{
		FieldReference: p.Ref,
		FieldCodOffer:  p.CodOffer,
	})
}

// PropertyListResult - страница результатов поиска.
type PropertyListResult struct {
	Total int
	Items []PropertySummary
}

// PropertyDetail - полная карточка объекта ("ficha"), непрозрачная для сервиса.
type PropertyDetail struct {
	CodOffer string
	Raw      json.RawMessage
}

func (d PropertyDetail) MarshalJSON() ([]byte, error) {
	if len(d.Raw) > 0 {
		return d.Raw, nil
	}
	return []byte("null"), nil
}
