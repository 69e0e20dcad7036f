package intent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/luminous-dynamics/ask-nix/assets"
	"github.com/luminous-dynamics/ask-nix/internal/domain"
)

// Pattern maps a set of trigger keywords to one intent type. Keywords may be
// multi-word phrases; table order is the documented tie-break.
type Pattern struct {
	Intent   domain.IntentType
	Keywords []string
}

func defaultPatterns() []Pattern {
	return []Pattern{
		{Intent: domain.IntentInstall, Keywords: []string{
			"install", "get", "add", "download", "i want", "i need", "grab", "set up",
		}},
		{Intent: domain.IntentRemove, Keywords: []string{
			"remove", "uninstall", "delete", "erase", "get rid of",
		}},
		{Intent: domain.IntentSearch, Keywords: []string{
			"search", "find", "look for", "is there", "do you have",
		}},
		{Intent: domain.IntentUpdate, Keywords: []string{
			"update", "upgrade", "refresh",
		}},
		{Intent: domain.IntentHelp, Keywords: []string{
			"help", "how do", "what can",
		}},
	}
}

const patternsSchemaURL = "patterns.schema.json"

type patternDef struct {
	Intent   string   `json:"intent"`
	Keywords []string `json:"keywords"`
}

// LoadCustomPatterns reads a user pattern extension file and validates it
// against the embedded JSON Schema before merging. A missing file is not an
// error; a malformed one is.
func LoadCustomPatterns(path string) ([]Pattern, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read patterns file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(patternsSchemaURL, bytes.NewReader(assets.PatternsSchemaJSON)); err != nil {
		return nil, fmt.Errorf("load patterns schema: %w", err)
	}
	schema, err := compiler.Compile(patternsSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile patterns schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse patterns file: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate patterns file: %w", err)
	}

	var defs []patternDef
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse patterns file: %w", err)
	}

	patterns := make([]Pattern, 0, len(defs))
	for _, def := range defs {
		patterns = append(patterns, Pattern{
			Intent:   domain.IntentType(def.Intent),
			Keywords: def.Keywords,
		})
	}
	return patterns, nil
}
