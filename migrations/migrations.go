// Package migrations embeds the versioned schema files for each backend.
package migrations

import "embed"

// FS holds sqlite/, postgres/ (day records) and kv/ (local cache) NNN_name.sql files.
//
//go:embed sqlite/*.sql postgres/*.sql kv/*.sql
var FS embed.FS
