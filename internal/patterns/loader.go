package patterns

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema returns the JSON-Schema (draft 2020-12 subset) a pattern
// override file must satisfy: field name -> ordered rule list.
func configSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"expr":  map[string]any{"type": "string", "minLength": 1},
					"group": map[string]any{"type": "integer", "minimum": 1},
				},
				"required": []string{"expr"},
			},
		},
	}
}

// validateConfig validates raw override bytes against the config schema.
func validateConfig(data []byte) error {
	b, err := json.Marshal(configSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("patterns.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("patterns.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("pattern config does not match schema: %w", err)
	}
	return nil
}

// Load returns the built-in library with per-field overrides from path
// applied on top. An empty path returns the defaults unchanged. The file
// must pass schema validation as a whole; individual rules that fail to
// compile afterwards are logged and skipped, never fatal.
func Load(path string, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}
	lib := Default(logger)
	if path == "" {
		return lib, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern config: %w", err)
	}
	if err := validateConfig(data); err != nil {
		return nil, err
	}

	var overrides map[string][]*Rule
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("decode pattern config: %w", err)
	}

	for field, ruleList := range overrides {
		lib.fields[field] = ruleList
	}
	compile(lib.fields, logger)
	logger.Info("patterns.loaded", "path", path, "overridden_fields", len(overrides))
	return lib, nil
}
