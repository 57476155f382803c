package lora

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "zero rank", mutate: func(c *Config) { c.R = 0 }, wantErr: true},
		{name: "zero alpha", mutate: func(c *Config) { c.Alpha = 0 }, wantErr: true},
		{name: "dropout too high", mutate: func(c *Config) { c.Dropout = 1 }, wantErr: true},
		{name: "no targets", mutate: func(c *Config) { c.TargetModules = nil }, wantErr: true},
		{name: "bad bias mode", mutate: func(c *Config) { c.Bias = "some" }, wantErr: true},
		{name: "lora_only bias", mutate: func(c *Config) { c.Bias = "lora_only" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// fullState builds a small model state with frozen base weights and
// adapter matrices on two modules.
func fullState() StateDict {
	vec := func(n int) Tensor {
		return Tensor{Shape: []int64{int64(n)}, Data: make([]float32, n)}
	}
	return StateDict{
		"model.layers.0.q_proj.weight":        vec(16),
		"model.layers.0.q_proj.lora_A.weight": vec(4),
		"model.layers.0.q_proj.lora_B.weight": vec(4),
		"model.layers.0.q_proj.bias":          vec(2),
		"model.layers.0.k_proj.weight":        vec(16),
		"model.layers.0.k_proj.lora_A.weight": vec(4), // not targeted
		"model.layers.0.v_proj.lora_B.weight": vec(4),
		"model.layers.0.mlp.bias":             vec(2),
	}
}

func TestAdapterState(t *testing.T) {
	cfg := DefaultConfig() // targets q_proj, v_proj; bias none

	adapter := AdapterState(fullState(), cfg)

	assert.Len(t, adapter, 3)
	assert.Contains(t, adapter, "model.layers.0.q_proj.lora_A.weight")
	assert.Contains(t, adapter, "model.layers.0.q_proj.lora_B.weight")
	assert.Contains(t, adapter, "model.layers.0.v_proj.lora_B.weight")

	// Frozen weights, untargeted adapters and biases stay behind.
	assert.NotContains(t, adapter, "model.layers.0.q_proj.weight")
	assert.NotContains(t, adapter, "model.layers.0.k_proj.lora_A.weight")
	assert.NotContains(t, adapter, "model.layers.0.q_proj.bias")
}

func TestAdapterState_BiasModes(t *testing.T) {
	state := fullState()

	t.Run("all biases", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Bias = "all"
		adapter := AdapterState(state, cfg)
		assert.Contains(t, adapter, "model.layers.0.q_proj.bias")
		assert.Contains(t, adapter, "model.layers.0.mlp.bias")
	})

	t.Run("lora_only biases", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Bias = "lora_only"
		adapter := AdapterState(state, cfg)
		assert.Contains(t, adapter, "model.layers.0.q_proj.bias")
		assert.NotContains(t, adapter, "model.layers.0.mlp.bias")
	})
}

func TestSummarize(t *testing.T) {
	summary := Summarize(fullState(), DefaultConfig())

	assert.Equal(t, int64(52), summary.Total)
	assert.Equal(t, int64(12), summary.Trainable)
	assert.InDelta(t, 100*12.0/52.0, summary.Percent(), 1e-9)

	assert.Zero(t, Summary{}.Percent())
}

func TestWriteSafeTensors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adapter.safetensors")

	state := StateDict{
		"b.weight": {Shape: []int64{2, 2}, Data: []float32{1, 2, 3, 4}},
		"a.weight": {Shape: []int64{2}, Data: []float32{5, 6}},
	}
	require.NoError(t, WriteSafeTensors(path, state, map[string]string{"format": "pt"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(raw), 8)

	headerSize := binary.LittleEndian.Uint64(raw[:8])
	var header map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw[8:8+headerSize], &header))

	assert.Contains(t, header, "__metadata__")
	assert.Contains(t, header, "a.weight")
	assert.Contains(t, header, "b.weight")

	// Alphabetical order: a.weight occupies the first 8 data bytes.
	var a safeTensorHeader
	require.NoError(t, json.Unmarshal(header["a.weight"], &a))
	assert.Equal(t, [2]int64{0, 8}, a.DataOffsets)
	assert.Equal(t, "F32", a.DType)

	var b safeTensorHeader
	require.NoError(t, json.Unmarshal(header["b.weight"], &b))
	assert.Equal(t, [2]int64{8, 24}, b.DataOffsets)

	// Total data length matches the offsets.
	assert.Len(t, raw, int(8+headerSize)+24)

	// First float of a.weight decodes back.
	start := 8 + int(headerSize)
	assert.Equal(t, float32(5), math.Float32frombits(binary.LittleEndian.Uint32(raw[start:start+4])))
}

func TestWriteSafeTensors_ShapeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.safetensors")
	state := StateDict{
		"a": {Shape: []int64{3}, Data: []float32{1, 2}},
	}
	assert.Error(t, WriteSafeTensors(path, state, nil))
}
