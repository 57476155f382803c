// Package lora carries the low-rank-adaptation knobs of a fine-tuning
// run and the export of trained adapter weights.
//
// The adaptation math itself (injecting the low-rank matrices, gradient
// flow) belongs to the external training framework; this package owns
// what surrounds it: configuration, the trainable-parameter export view
// and adapter serialization.
package lora

import "fmt"

// Config holds the LoRA hyperparameters of a run.
type Config struct {
	// R is the rank of the injected low-rank matrices.
	R int `mapstructure:"r" json:"r"`

	// Alpha scales the adapter output (alpha/r is the effective
	// scaling factor).
	Alpha int `mapstructure:"alpha" json:"lora_alpha"`

	// Dropout is applied to the adapter input during training.
	Dropout float64 `mapstructure:"dropout" json:"lora_dropout"`

	// TargetModules names the model sub-modules that receive adapters.
	TargetModules []string `mapstructure:"targetModules" json:"target_modules"`

	// Bias selects which bias parameters train: "none", "all" or
	// "lora_only".
	Bias string `mapstructure:"bias" json:"bias"`

	// TaskType tags the adapter for the training framework,
	// e.g. "CAUSAL_LM" or "SEQ_2_SEQ_LM".
	TaskType string `mapstructure:"taskType" json:"task_type"`
}

// DefaultConfig returns the hyperparameters the runs were tuned with.
func DefaultConfig() Config {
	return Config{
		R:             8,
		Alpha:         16,
		Dropout:       0.05,
		TargetModules: []string{"q_proj", "v_proj"},
		Bias:          "none",
		TaskType:      "CAUSAL_LM",
	}
}

// Validate checks the configuration for obviously unusable values.
func (c Config) Validate() error {
	if c.R <= 0 {
		return fmt.Errorf("lora rank must be positive, got %d", c.R)
	}
	if c.Alpha <= 0 {
		return fmt.Errorf("lora alpha must be positive, got %d", c.Alpha)
	}
	if c.Dropout < 0 || c.Dropout >= 1 {
		return fmt.Errorf("lora dropout out of range [0, 1): %v", c.Dropout)
	}
	if len(c.TargetModules) == 0 {
		return fmt.Errorf("no target modules configured")
	}
	switch c.Bias {
	case "none", "all", "lora_only":
	default:
		return fmt.Errorf("unknown bias mode %q", c.Bias)
	}
	return nil
}
