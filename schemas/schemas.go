// Package schemas содержит JSON-схемы входящих контрактов сервиса.
package schemas

import "embed"

//go:embed http/*.json
var SchemasFS embed.FS
