// Package migrations embeds the document service schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
