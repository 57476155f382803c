// Package pipeline exposes the example-to-training-tensor pipeline:
// prompt rendering, tokenization with loss masking, length budgeting
// and batch collation.
//
// This package wraps the internal packages and provides a clean public
// API for the surrounding training framework.
//
// Example usage:
//
//	import (
//	    "github.com/lamora-ml/lamora/pipeline"
//	    "github.com/lamora-ml/lamora/tokenizer"
//	)
//
//	tok, _ := tokenizer.NewTikToken("cl100k_base")
//	proc := pipeline.NewInstructProcessor(tok, 2048)
//
//	processed, err := proc.Process(pipeline.Instruct{
//	    Instruction: "Traduis en français",
//	    Output:      "Bonjour",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	collator := pipeline.NewCollator(tok.PadToken(), 8)
//	batch, err := collator.Collate([]pipeline.ProcessedExample{*processed})
package pipeline

import (
	"github.com/lamora-ml/lamora/internal/budget"
	"github.com/lamora-ml/lamora/internal/collate"
	"github.com/lamora-ml/lamora/internal/dataset"
	"github.com/lamora-ml/lamora/internal/process"
	"github.com/lamora-ml/lamora/internal/prompt"
	"github.com/lamora-ml/lamora/internal/tokenizer"
)

// IgnoreIndex is the sentinel label value excluded from loss computation.
const IgnoreIndex = process.IgnoreIndex

// DefaultPercentile is the length-budget percentile used when none is
// configured.
const DefaultPercentile = budget.DefaultPercentile

// Dataset record types.
type (
	// Instruct is a single-turn instruction example.
	Instruct = dataset.Instruct

	// Conversation is a multi-turn chat example.
	Conversation = dataset.Conversation

	// Turn is one message of a conversation.
	Turn = dataset.Turn
)

// ProcessedExample is one example converted to training tensors.
type ProcessedExample = process.ProcessedExample

// InstructProcessor converts instruction examples into training tensors.
type InstructProcessor = process.InstructProcessor

// ConversationProcessor converts chat examples into training tensors.
type ConversationProcessor = process.ConversationProcessor

// Collator pads batches of processed examples to a rectangle.
type Collator = collate.Collator

// Batch is one rectangular training batch.
type Batch = collate.Batch

// MissingFieldError reports a required template field absent from an example.
type MissingFieldError = prompt.MissingFieldError

// SchemaMismatchError reports a record that does not match the dataset schema.
type SchemaMismatchError = dataset.SchemaMismatchError

// NewInstructProcessor creates an instruct processor with the default
// template. modelMaxLength of 0 disables truncation.
func NewInstructProcessor(tok tokenizer.Tokenizer, modelMaxLength int) *InstructProcessor {
	return process.NewInstructProcessor(tok, modelMaxLength)
}

// NewConversationProcessor creates a conversation processor with the
// default template and input masking on.
func NewConversationProcessor(tok tokenizer.Tokenizer, modelMaxLength int) *ConversationProcessor {
	return process.NewConversationProcessor(tok, modelMaxLength)
}

// NewCollator creates a collator padding with the given token ID.
// padToMultipleOf of 0 disables multiple-of rounding.
func NewCollator(padTokenID int32, padToMultipleOf int) *Collator {
	return collate.NewCollator(padTokenID, padToMultipleOf)
}

// SelectBudget computes a truncation ceiling from a length
// distribution: ceil(percentile(lengths, p)).
func SelectBudget(lengths []int, percentile float64) (int, error) {
	return budget.Select(lengths, percentile)
}
