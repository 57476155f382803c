package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/lamora-ml/lamora/internal/budget"
	"github.com/lamora-ml/lamora/internal/config"
	"github.com/lamora-ml/lamora/internal/dataset"
	"github.com/lamora-ml/lamora/internal/process"
	"github.com/lamora-ml/lamora/internal/tokenizer"
)

// runPrepare tokenizes a dataset, derives length budgets and writes the
// processed examples plus a manifest.
func runPrepare(args []string) error {
	fs := flag.NewFlagSet("prepare", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (default ./lamora.yaml)")
	trainFile := fs.String("train", "", "training JSONL file (overrides config)")
	evalFile := fs.String("eval", "", "evaluation JSONL file (overrides config)")
	outputDir := fs.String("output", "", "output directory (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *trainFile != "" {
		cfg.Data.TrainFile = *trainFile
	}
	if *evalFile != "" {
		cfg.Data.EvalFile = *evalFile
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if cfg.Data.TrainFile == "" {
		return fmt.Errorf("no training file specified")
	}

	tok, err := newTokenizer(cfg.Tokenizer)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	manifest := dataset.NewManifest(cfg.Schema(), tok.Name())
	manifest.MaxSourceLength = cfg.Process.MaxSourceLength
	manifest.MaxTargetLength = cfg.Process.MaxTargetLength

	switch cfg.Schema() {
	case dataset.SchemaInstruct:
		err = prepareInstruct(cfg, tok, manifest)
	case dataset.SchemaConversation:
		err = prepareConversations(cfg, tok, manifest)
	}
	if err != nil {
		return err
	}

	manifestPath := filepath.Join(cfg.Output.Dir, "manifest.json")
	if err := manifest.Write(manifestPath); err != nil {
		return err
	}

	log.Info().
		Str("run_id", manifest.RunID).
		Str("dir", cfg.Output.Dir).
		Int("train", manifest.NumTrain).
		Int("eval", manifest.NumEval).
		Msg("dataset prepared")
	return nil
}

func prepareInstruct(cfg *config.Config, tok tokenizer.Tokenizer, manifest *dataset.Manifest) error {
	train, err := dataset.LoadInstruct(cfg.Data.TrainFile)
	if err != nil {
		return err
	}
	log.Info().Int("examples", len(train)).Str("file", cfg.Data.TrainFile).Msg("loaded training split")

	proc := process.NewInstructProcessor(tok, cfg.Process.ModelMaxLength)
	proc.WithLength = true

	if cfg.Process.ModelMaxLength == 0 {
		lengths, err := dataset.Map(train, cfg.Data.NumWorkers, proc.ExampleLength)
		if err != nil {
			return err
		}

		ceiling, computed, err := budget.Resolve(0, lengths, cfg.Process.LengthPercentile)
		if err != nil {
			return err
		}
		if computed {
			log.Info().
				Float64("percentile", cfg.Process.LengthPercentile).
				Int("model_max_length", ceiling).
				Msg("model_max_length set from training example lengths")
		}
		proc.ModelMaxLength = ceiling

		// Seq2seq budgets ride on the same pass, for trainers that
		// encode source and target separately.
		if err := resolveSourceTarget(cfg, proc, train, manifest); err != nil {
			return err
		}
	}
	manifest.ModelMaxLength = proc.ModelMaxLength

	processed, err := dataset.Map(train, cfg.Data.NumWorkers, proc.Process)
	if err != nil {
		return err
	}
	if err := writeProcessed(filepath.Join(cfg.Output.Dir, "train.jsonl"), processed); err != nil {
		return err
	}
	manifest.NumTrain = len(processed)

	if cfg.Data.EvalFile == "" {
		return nil
	}
	eval, err := dataset.LoadInstruct(cfg.Data.EvalFile)
	if err != nil {
		return err
	}
	processed, err = dataset.Map(eval, cfg.Data.NumWorkers, proc.Process)
	if err != nil {
		return err
	}
	if err := writeProcessed(filepath.Join(cfg.Output.Dir, "eval.jsonl"), processed); err != nil {
		return err
	}
	manifest.NumEval = len(processed)
	return nil
}

// resolveSourceTarget derives the seq2seq source/target ceilings that
// are not explicitly configured.
func resolveSourceTarget(cfg *config.Config, proc *process.InstructProcessor, train []dataset.Instruct, manifest *dataset.Manifest) error {
	if cfg.Process.MaxSourceLength > 0 && cfg.Process.MaxTargetLength > 0 {
		return nil
	}

	type pair struct{ source, target int }
	pairs, err := dataset.Map(train, cfg.Data.NumWorkers, func(ex dataset.Instruct) (pair, error) {
		s, t, err := proc.SourceTargetLength(ex)
		return pair{source: s, target: t}, err
	})
	if err != nil {
		return err
	}

	sources := make([]int, len(pairs))
	targets := make([]int, len(pairs))
	for i, p := range pairs {
		sources[i] = p.source
		targets[i] = p.target
	}

	source, computed, err := budget.Resolve(cfg.Process.MaxSourceLength, sources, cfg.Process.SourcePercentile)
	if err != nil {
		return err
	}
	if computed {
		log.Info().
			Float64("percentile", cfg.Process.SourcePercentile).
			Int("max_source_length", source).
			Msg("max_source_length set from training example lengths")
	}
	manifest.MaxSourceLength = source

	target, computed, err := budget.Resolve(cfg.Process.MaxTargetLength, targets, cfg.Process.TargetPercentile)
	if err != nil {
		return err
	}
	if computed {
		log.Info().
			Float64("percentile", cfg.Process.TargetPercentile).
			Int("max_target_length", target).
			Msg("max_target_length set from training example lengths")
	}
	manifest.MaxTargetLength = target
	return nil
}

func prepareConversations(cfg *config.Config, tok tokenizer.Tokenizer, manifest *dataset.Manifest) error {
	train, err := dataset.LoadConversations(cfg.Data.TrainFile)
	if err != nil {
		return err
	}
	log.Info().Int("examples", len(train)).Str("file", cfg.Data.TrainFile).Msg("loaded training split")

	proc := process.NewConversationProcessor(tok, cfg.Process.ModelMaxLength)
	proc.MaskInput = cfg.Process.MaskInput
	proc.WithLength = true

	if cfg.Process.ModelMaxLength == 0 {
		lengths, err := dataset.Map(train, cfg.Data.NumWorkers, proc.ExampleLength)
		if err != nil {
			return err
		}

		ceiling, computed, err := budget.Resolve(0, lengths, cfg.Process.LengthPercentile)
		if err != nil {
			return err
		}
		if computed {
			log.Info().
				Float64("percentile", cfg.Process.LengthPercentile).
				Int("model_max_length", ceiling).
				Msg("model_max_length set from training example lengths")
		}
		proc.ModelMaxLength = ceiling
	}
	manifest.ModelMaxLength = proc.ModelMaxLength

	processed, err := dataset.Map(train, cfg.Data.NumWorkers, proc.Process)
	if err != nil {
		return err
	}
	if err := writeProcessed(filepath.Join(cfg.Output.Dir, "train.jsonl"), processed); err != nil {
		return err
	}
	manifest.NumTrain = len(processed)

	if cfg.Data.EvalFile == "" {
		return nil
	}
	eval, err := dataset.LoadConversations(cfg.Data.EvalFile)
	if err != nil {
		return err
	}
	processed, err = dataset.Map(eval, cfg.Data.NumWorkers, proc.Process)
	if err != nil {
		return err
	}
	if err := writeProcessed(filepath.Join(cfg.Output.Dir, "eval.jsonl"), processed); err != nil {
		return err
	}
	manifest.NumEval = len(processed)
	return nil
}

func writeProcessed(path string, processed []*process.ProcessedExample) error {
	records := make([]process.ProcessedExample, len(processed))
	for i, p := range processed {
		records[i] = *p
	}
	return dataset.WriteJSONL(path, records)
}
