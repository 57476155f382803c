package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lamora-ml/lamora/internal/dataset"
)

// runMerge concatenates several JSONL datasets of one schema into a
// single file, keeping only the schema fields of each record.
func runMerge(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	schemaName := fs.String("schema", string(dataset.SchemaInstruct), "dataset schema: instruct or conversation")
	output := fs.String("o", "", "output JSONL file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		return fmt.Errorf("no output file specified (-o)")
	}
	inputs := fs.Args()
	if len(inputs) < 2 {
		return fmt.Errorf("need at least two input files, got %d", len(inputs))
	}

	schema, ok := dataset.ParseSchema(*schemaName)
	if !ok {
		return fmt.Errorf("unknown dataset schema %q", *schemaName)
	}

	var total int
	var err error
	switch schema {
	case dataset.SchemaInstruct:
		total, err = dataset.MergeInstruct(inputs, *output)
	case dataset.SchemaConversation:
		total, err = dataset.MergeConversations(inputs, *output)
	}
	if err != nil {
		return err
	}

	log.Info().
		Int("inputs", len(inputs)).
		Int("examples", total).
		Str("file", *output).
		Msg("datasets merged")
	return nil
}
