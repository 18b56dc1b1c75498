// Package schemas embeds the JSON Schema documents for persisted artifacts.
package schemas

import _ "embed"

// PlatformData is the JSON Schema of the unified record.
//
//go:embed platform_data.schema.json
var PlatformData string
