package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Manifest records how a prepared dataset was produced, next to the
// processed JSONL files.
type Manifest struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`

	Schema    Schema `json:"schema"`
	Tokenizer string `json:"tokenizer"`

	NumTrain int `json:"num_train"`
	NumEval  int `json:"num_eval,omitempty"`

	// Truncation ceilings actually applied, whether configured
	// explicitly or derived from the length percentiles.
	ModelMaxLength  int `json:"model_max_length,omitempty"`
	MaxSourceLength int `json:"max_source_length,omitempty"`
	MaxTargetLength int `json:"max_target_length,omitempty"`
}

// NewManifest creates a manifest with a fresh run ID.
func NewManifest(schema Schema, tokenizerName string) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Schema:    schema,
		Tokenizer: tokenizerName,
	}
}

// Write stores the manifest as indented JSON.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: manifest is not sensitive.
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
