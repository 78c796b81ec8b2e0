package inmovilla_client

import (
	"strings"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
)

// quoteReplacer экранирует значение так же, как PHP addslashes:
// обратный слеш, двойная и одинарная кавычки и NUL получают префикс "\".
var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`'`, `\'`,
	"\x00", `\0`,
)

func escapeValue(v string) string {
	return quoteReplacer.Replace(v)
}

// RenderWhere переводит типизированный фильтр в where-выражение Inmovilla:
// field="value" AND field2="value2".
func RenderWhere(filter domain.PropertyFilter) string {
	var b strings.Builder
	for i, c := range filter.Conditions() {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(c.Field)
		b.WriteString(`="`)
		b.WriteString(escapeValue(c.Value))
		b.WriteString(`"`)
	}
	return b.String()
}

// codOfferWhere - условие для процесса "ficha". Числовой код передается без кавычек.
func codOfferWhere(codOffer string) string {
	if isDigits(codOffer) {
		return domain.FieldCodOffer + "=" + codOffer
	}
	return RenderWhere(domain.PropertyFilter{}.Equals(domain.FieldCodOffer, codOffer))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
