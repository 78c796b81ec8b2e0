package domain

// Поля Inmovilla, по которым умеет фильтровать сервис.
const (
	FieldReference = "ref"
	FieldStreet    = "direccion"
	FieldCodOffer  = "cod_ofer"
)

// Condition - одно условие равенства field = value.
type Condition struct {
	Field string
	Value string
}

// PropertyFilter - типизированный фильтр для запроса списка объектов.
// Условия объединяются через AND в порядке добавления. Превращение в строку
// для вендорского API происходит только в адаптере inmovilla_client.
type PropertyFilter struct {
	conditions []Condition
}

// Equals возвращает новый фильтр с добавленным условием. Исходный фильтр не меняется.
func (f PropertyFilter) Equals(field, value string) PropertyFilter {
	conditions := make([]Condition, len(f.conditions), len(f.conditions)+1)
	copy(conditions, f.conditions)
	return PropertyFilter{conditions: append(conditions, Condition{Field: field, Value: value})}
}

func (f PropertyFilter) Conditions() []Condition {
	out := make([]Condition, len(f.conditions))
	copy(out, f.conditions)
	return out
}

func (f PropertyFilter) IsEmpty() bool {
	return len(f.conditions) == 0
}
