package jobstore

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
)

// KindResult is the per-extraction outcome recorded in a job's manifest.
type KindResult struct {
	Succeeded bool   `json:"succeeded"`
	File      string `json:"file,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Manifest describes what a finished job produced: the combined workbook
// reference plus the per-kind outcomes. It is validated against
// manifestSchema before it is persisted, so a malformed manifest fails the
// write instead of poisoning the store.
type Manifest struct {
	JobID       string                `json:"job_id"`
	Source      string                `json:"source"`
	Workbook    string                `json:"workbook,omitempty"`
	Kinds       map[string]KindResult `json:"kinds"`
	DroppedRows int                   `json:"dropped_rows"`
}

const manifestSchema = `{
	"type": "object",
	"required": ["job_id", "source", "kinds"],
	"properties": {
		"job_id": {"type": "string", "minLength": 1},
		"source": {"type": "string", "minLength": 1},
		"workbook": {"type": "string"},
		"dropped_rows": {"type": "integer", "minimum": 0},
		"kinds": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["succeeded"],
				"properties": {
					"succeeded": {"type": "boolean"},
					"file": {"type": "string"},
					"error": {"type": "string"}
				}
			}
		}
	}
}`

var compiledManifestSchema = jsonschema.MustCompileString("manifest.json", manifestSchema)

// Validate checks the manifest against the schema and that every kind key
// is a known extraction kind.
func (m Manifest) Validate() error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal manifest: %w", err)
	}
	if err := compiledManifestSchema.Validate(v); err != nil {
		return fmt.Errorf("manifest does not match schema: %w", err)
	}
	for key := range m.Kinds {
		if !isKnownKind(key) {
			return fmt.Errorf("manifest has unknown extraction kind %q", key)
		}
	}
	return nil
}

// Failed lists the kinds that did not succeed, in canonical order.
func (m Manifest) Failed() []string {
	var out []string
	for _, kind := range constants.AllKinds {
		if r, ok := m.Kinds[string(kind)]; ok && !r.Succeeded {
			out = append(out, string(kind))
		}
	}
	return out
}

func isKnownKind(key string) bool {
	for _, kind := range constants.AllKinds {
		if strings.EqualFold(key, string(kind)) {
			return true
		}
	}
	return false
}
