package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lamora-ml/lamora/internal/budget"
	"github.com/lamora-ml/lamora/internal/config"
	"github.com/lamora-ml/lamora/internal/dataset"
	"github.com/lamora-ml/lamora/internal/process"
)

// statsPercentiles are the percentiles reported by the stats command.
// 100 is the observed maximum.
var statsPercentiles = []float64{50, 90, 95, 99, 100}

// runStats tokenizes a dataset and reports its length-percentile table,
// a dry run of the budgeting a prepare run would do.
func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (default ./lamora.yaml)")
	file := fs.String("file", "", "JSONL file to analyze (overrides config train file)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *file != "" {
		cfg.Data.TrainFile = *file
	}
	if cfg.Data.TrainFile == "" {
		return fmt.Errorf("no dataset file specified")
	}

	tok, err := newTokenizer(cfg.Tokenizer)
	if err != nil {
		return err
	}

	var lengths []int
	switch cfg.Schema() {
	case dataset.SchemaInstruct:
		examples, err := dataset.LoadInstruct(cfg.Data.TrainFile)
		if err != nil {
			return err
		}
		proc := process.NewInstructProcessor(tok, 0)
		lengths, err = dataset.Map(examples, cfg.Data.NumWorkers, proc.ExampleLength)
		if err != nil {
			return err
		}
	case dataset.SchemaConversation:
		examples, err := dataset.LoadConversations(cfg.Data.TrainFile)
		if err != nil {
			return err
		}
		proc := process.NewConversationProcessor(tok, 0)
		lengths, err = dataset.Map(examples, cfg.Data.NumWorkers, proc.ExampleLength)
		if err != nil {
			return err
		}
	}

	log.Info().
		Int("examples", len(lengths)).
		Str("tokenizer", tok.Name()).
		Str("file", cfg.Data.TrainFile).
		Msg("dataset tokenized")

	fmt.Printf("%-12s %s\n", "percentile", "tokens")
	for _, p := range statsPercentiles {
		ceiling, err := budget.Select(lengths, p)
		if err != nil {
			return err
		}
		fmt.Printf("p%-11v %d\n", p, ceiling)
	}
	return nil
}
