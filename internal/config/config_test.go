package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamora-ml/lamora/internal/dataset"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, dataset.SchemaInstruct, cfg.Schema())
	assert.Equal(t, "tiktoken", cfg.Tokenizer.Kind)
	assert.Equal(t, "cl100k_base", cfg.Tokenizer.Encoding)
	assert.Equal(t, 95.0, cfg.Process.LengthPercentile)
	assert.True(t, cfg.Process.MaskInput)
	assert.Equal(t, 8, cfg.Collator.PadToMultipleOf)
	assert.Equal(t, 8, cfg.LoRA.R)
	assert.Equal(t, []string{"q_proj", "v_proj"}, cfg.LoRA.TargetModules)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lamora.yaml")
	content := `
data:
  trainFile: train.jsonl
  schema: conversation
  numWorkers: 4
tokenizer:
  kind: huggingface
  path: /models/tokenizer.json
process:
  modelMaxLength: 2048
  maskInput: false
collator:
  padToMultipleOf: 16
lora:
  r: 16
  targetModules: ["q_proj", "k_proj", "v_proj"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "train.jsonl", cfg.Data.TrainFile)
	assert.Equal(t, dataset.SchemaConversation, cfg.Schema())
	assert.Equal(t, 4, cfg.Data.NumWorkers)
	assert.Equal(t, "huggingface", cfg.Tokenizer.Kind)
	assert.Equal(t, 2048, cfg.Process.ModelMaxLength)
	assert.False(t, cfg.Process.MaskInput)
	assert.Equal(t, 16, cfg.Collator.PadToMultipleOf)
	assert.Equal(t, 16, cfg.LoRA.R)
	assert.Len(t, cfg.LoRA.TargetModules, 3)

	// Untouched keys keep their defaults.
	assert.Equal(t, 95.0, cfg.Process.SourcePercentile)
	assert.Equal(t, 16, cfg.LoRA.Alpha)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad schema", content: "data:\n  schema: chat\n"},
		{name: "bad lora rank", content: "lora:\n  r: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lamora.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
