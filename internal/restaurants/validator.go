package restaurants

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonschema"
)

//go:embed schema/restaurant.schema.json
var manifestSchema []byte

// validateManifest checks a parsed manifest against the catalog JSON Schema.
// Strict YAML parsing catches unknown keys; the schema catches out-of-range
// values (negative prices, ratings above 5, empty menu item names).
func validateManifest(m *Manifest) error {
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(manifestSchema)
	if err != nil {
		return fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	// Round-trip through JSON to get the map shape the validator expects
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	result := schema.Validate(doc)
	if !result.IsValid() {
		var errorMessages []string
		for field, evalErr := range result.Errors {
			errorMessages = append(errorMessages, fmt.Sprintf("%s: %s", field, evalErr.Error()))
		}
		return fmt.Errorf("manifest validation failed: %s", strings.Join(errorMessages, "; "))
	}

	return nil
}
