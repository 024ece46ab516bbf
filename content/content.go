// Package content embeds the built-in archetype and weapon definitions.
package content

import "embed"

// FS holds archetypes/*.yaml and weapons/*.yaml.
//
//go:embed archetypes/*.yaml weapons/*.yaml
var FS embed.FS
