// Package config loads run configuration from a YAML file and
// LAMORA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/lamora-ml/lamora/internal/budget"
	"github.com/lamora-ml/lamora/internal/dataset"
	"github.com/lamora-ml/lamora/internal/lora"
)

// Config stores the full configuration of a preparation run.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Process   ProcessConfig   `mapstructure:"process"`
	Collator  CollatorConfig  `mapstructure:"collator"`
	LoRA      lora.Config     `mapstructure:"lora"`
	Output    OutputConfig    `mapstructure:"output"`
}

// DataConfig locates the dataset files and fixes their schema.
type DataConfig struct {
	TrainFile  string `mapstructure:"trainFile"`
	EvalFile   string `mapstructure:"evalFile"`
	Schema     string `mapstructure:"schema"`
	NumWorkers int    `mapstructure:"numWorkers"`
}

// TokenizerConfig selects the tokenizer implementation.
type TokenizerConfig struct {
	// Kind is one of "tiktoken", "huggingface" or "word".
	Kind string `mapstructure:"kind"`

	// Encoding names the tiktoken encoding (e.g. "cl100k_base").
	Encoding string `mapstructure:"encoding"`

	// Path points at a tokenizer.json file or model directory for the
	// huggingface kind.
	Path string `mapstructure:"path"`
}

// ProcessConfig controls tokenization-with-masking and length budgets.
type ProcessConfig struct {
	// ModelMaxLength is an explicit truncation ceiling; 0 derives it
	// from the length distribution at LengthPercentile.
	ModelMaxLength   int     `mapstructure:"modelMaxLength"`
	LengthPercentile float64 `mapstructure:"lengthPercentile"`

	// Seq2seq budgets: explicit source/target ceilings, or 0 to derive
	// each from its percentile.
	MaxSourceLength  int     `mapstructure:"maxSourceLength"`
	MaxTargetLength  int     `mapstructure:"maxTargetLength"`
	SourcePercentile float64 `mapstructure:"sourcePercentile"`
	TargetPercentile float64 `mapstructure:"targetPercentile"`

	// MaskInput masks non-assistant tokens in conversation datasets.
	MaskInput bool `mapstructure:"maskInput"`
}

// CollatorConfig controls batch padding.
type CollatorConfig struct {
	PadToMultipleOf int `mapstructure:"padToMultipleOf"`
}

// OutputConfig locates the prepared-dataset output.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from a file (or ./lamora.yaml when empty)
// and the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("lamora")
		v.SetConfigType("yaml")
	}

	v.SetDefault("data.schema", string(dataset.SchemaInstruct))
	v.SetDefault("data.numWorkers", 0)
	v.SetDefault("tokenizer.kind", "tiktoken")
	v.SetDefault("tokenizer.encoding", "cl100k_base")
	v.SetDefault("process.lengthPercentile", budget.DefaultPercentile)
	v.SetDefault("process.sourcePercentile", budget.DefaultPercentile)
	v.SetDefault("process.targetPercentile", budget.DefaultPercentile)
	v.SetDefault("process.maskInput", true)
	v.SetDefault("collator.padToMultipleOf", 8)
	v.SetDefault("output.dir", "prepared")

	defaults := lora.DefaultConfig()
	v.SetDefault("lora.r", defaults.R)
	v.SetDefault("lora.alpha", defaults.Alpha)
	v.SetDefault("lora.dropout", defaults.Dropout)
	v.SetDefault("lora.targetModules", defaults.TargetModules)
	v.SetDefault("lora.bias", defaults.Bias)
	v.SetDefault("lora.taskType", defaults.TaskType)

	v.SetEnvPrefix("LAMORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine: defaults plus env cover every key.
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, ok := dataset.ParseSchema(cfg.Data.Schema); !ok {
		return nil, fmt.Errorf("unknown dataset schema %q", cfg.Data.Schema)
	}
	if err := cfg.LoRA.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lora config: %w", err)
	}

	return &cfg, nil
}

// Schema returns the parsed dataset schema.
func (c *Config) Schema() dataset.Schema {
	schema, _ := dataset.ParseSchema(c.Data.Schema)
	return schema
}
