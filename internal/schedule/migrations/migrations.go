// Package migrations embeds the schedule service schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
