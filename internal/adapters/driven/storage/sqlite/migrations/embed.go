// Package migrations holds the numbered schema scripts of the annotation
// database. Each NNN_name.up.sql has a matching .down.sql.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
