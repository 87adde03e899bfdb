// Package migrations embeds the key management schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
