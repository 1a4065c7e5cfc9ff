package extraction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrWrongShape marks a model answer whose envelope does not match the
// documented response contract (e.g. "invoices" is not an array).
var ErrWrongShape = errors.New("extraction response has wrong shape")

// The schema constrains only the top-level response envelope. Field-level
// laxity stays with the normalizer, which maps missing or malformed invoice
// fields to documented defaults.
var envelopeSchema = sync.OnceValue(func() *jsonschema.Schema {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_type": map[string]any{"type": "string"},
			"invoices": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object"},
			},
		},
	}

	b, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("envelope.json", bytes.NewReader(b)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("envelope.json")
})

// validateEnvelope validates raw decoded JSON against the envelope schema.
func validateEnvelope(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if err := envelopeSchema().Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrWrongShape, err)
	}
	return nil
}
