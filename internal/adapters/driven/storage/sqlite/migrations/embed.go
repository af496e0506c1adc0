// Package migrations holds the schema of the donation database.
//
// Files are named NNN_description.up.sql and applied in version order.
// The store records each version itself, so files contain schema only.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
