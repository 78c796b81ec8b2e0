package inmovilla_client

import (
	"testing"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderWhere(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.PropertyFilter
		want   string
	}{
		{
			name:   "empty",
			filter: domain.PropertyFilter{},
			want:   "",
		},
		{
			name:   "single reference",
			filter: domain.PropertyFilter{}.Equals("ref", "ABC123"),
			want:   `ref="ABC123"`,
		},
		{
			name:   "reference and street joined with AND",
			filter: domain.PropertyFilter{}.Equals("ref", "ABC123").Equals("direccion", "Calle Mayor"),
			want:   `ref="ABC123" AND direccion="Calle Mayor"`,
		},
		{
			name:   "double quote is escaped",
			filter: domain.PropertyFilter{}.Equals("ref", `a"b`),
			want:   `ref="a\"b"`,
		},
		{
			name:   "backslash and single quote are escaped",
			filter: domain.PropertyFilter{}.Equals("direccion", `O'Donnell \ 5`),
			want:   `direccion="O\'Donnell \\ 5"`,
		},
		{
			name:   "clause breaking attempt stays inside the literal",
			filter: domain.PropertyFilter{}.Equals("ref", `x" OR "1"="1`),
			want:   `ref="x\" OR \"1\"=\"1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderWhere(tt.filter))
		})
	}
}

func TestCodOfferWhere(t *testing.T) {
	assert.Equal(t, "cod_ofer=55", codOfferWhere("55"))
	assert.Equal(t, `cod_ofer="5\"5"`, codOfferWhere(`5"5`))
}
