// Package main provides the lamora dataset-preparation CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lamora-ml/lamora/internal/config"
	"github.com/lamora-ml/lamora/internal/tokenizer"
)

const version = "v0.1.0-dev"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "prepare":
		err = runPrepare(os.Args[2:])
	case "merge":
		err = runMerge(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "hc3":
		err = runHC3(os.Args[2:])
	case "version":
		fmt.Printf("lamora %s\n", version)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}

func usage() {
	fmt.Println("lamora - instruction-tuning dataset preparation")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  prepare    Tokenize and mask a dataset for fine-tuning")
	fmt.Println("  merge      Merge several JSONL datasets into one")
	fmt.Println("  stats      Report token-length percentiles of a dataset")
	fmt.Println("  hc3        Convert an HC3 question/answers dump to instruct JSONL")
	fmt.Println("  version    Show version")
}

// newTokenizer builds the configured tokenizer implementation.
func newTokenizer(cfg config.TokenizerConfig) (tokenizer.Tokenizer, error) {
	switch cfg.Kind {
	case "tiktoken":
		return tokenizer.NewTikToken(cfg.Encoding)
	case "huggingface":
		return tokenizer.NewHuggingFace(cfg.Path)
	case "word":
		return tokenizer.NewWordLevel(), nil
	default:
		return nil, fmt.Errorf("unknown tokenizer kind %q", cfg.Kind)
	}
}
