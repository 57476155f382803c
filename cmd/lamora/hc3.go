package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lamora-ml/lamora/internal/dataset"
)

// runHC3 converts an HC3-style question/answers dump into an instruct
// JSONL dataset.
func runHC3(args []string) error {
	fs := flag.NewFlagSet("hc3", flag.ExitOnError)
	output := fs.String("o", "", "output JSONL file")
	seed := fs.Int64("seed", 42, "shuffle seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		return fmt.Errorf("no output file specified (-o)")
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("need exactly one input file, got %d", fs.NArg())
	}

	total, err := dataset.ConvertHC3(fs.Arg(0), *output, *seed)
	if err != nil {
		return err
	}

	log.Info().
		Int("examples", total).
		Str("file", *output).
		Msg("hc3 dump converted")
	return nil
}
