// Package migrations embeds the goose migrations for the tables owned by
// the server. Plans, usage and devices belong to the billing side and are
// not created here.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
