package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultSafetyYAML contains the embedded default safety rules.
//
//go:embed defaults/safety.yaml
var DefaultSafetyYAML []byte

// DefaultPackagesTxt contains the embedded seed package-name index, used
// until a real index is cached from nix-env -qaP.
//
//go:embed defaults/packages.txt
var DefaultPackagesTxt []byte

// PatternsSchemaJSON is the JSON Schema used to validate user-supplied
// intent pattern extension files.
//
//go:embed defaults/patterns.schema.json
var PatternsSchemaJSON []byte
