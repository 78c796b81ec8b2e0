package usecase

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeSearchValue убирает пробелы по краям и приводит строку к NFC,
// чтобы "Calle Mayor" с составными и предсоставленными акцентами давали одинаковый фильтр.
func normalizeSearchValue(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// hasParamSeparator - ';' разделяет поля запроса Inmovilla, экранировать его нечем.
func hasParamSeparator(values ...string) bool {
	for _, v := range values {
		if strings.Contains(v, ";") {
			return true
		}
	}
	return false
}
