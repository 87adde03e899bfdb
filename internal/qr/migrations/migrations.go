// Package migrations embeds the QR attendance schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
