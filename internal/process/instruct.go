package process

import (
	"fmt"

	"github.com/lamora-ml/lamora/internal/dataset"
	"github.com/lamora-ml/lamora/internal/prompt"
	"github.com/lamora-ml/lamora/internal/tokenizer"
)

// InstructProcessor converts single-turn instruction examples into
// training tensors.
//
// Layout: prompt tokens are masked with IgnoreIndex, everything at or
// after the prompt boundary (the answer plus the EOS token) trains.
type InstructProcessor struct {
	Template  *prompt.InstructTemplate
	Tokenizer tokenizer.Tokenizer

	// ModelMaxLength is the hard truncation ceiling in tokens.
	// 0 means no ceiling.
	ModelMaxLength int

	// WithLength populates ProcessedExample.Length.
	WithLength bool
}

// NewInstructProcessor creates a processor over the given tokenizer
// with the default instruct template.
func NewInstructProcessor(tok tokenizer.Tokenizer, modelMaxLength int) *InstructProcessor {
	return &InstructProcessor{
		Template:       prompt.NewInstructTemplate(),
		Tokenizer:      tok,
		ModelMaxLength: modelMaxLength,
	}
}

// Process converts one example.
//
// The prompt is tokenized alone to find the mask boundary, then the
// prompt, answer and EOS marker are tokenized together. Both
// tokenizations share the truncation ceiling, so a ceiling that cuts
// into the prompt itself leaves the whole sequence masked.
func (p *InstructProcessor) Process(ex dataset.Instruct) (*ProcessedExample, error) {
	userPrompt, err := p.Template.InferencePrompt(ex)
	if err != nil {
		return nil, err
	}
	if ex.Output == "" {
		return nil, &prompt.MissingFieldError{Field: "output"}
	}

	opts := tokenizer.Options{
		AddSpecialTokens: true,
		Truncation:       true,
		MaxLength:        p.ModelMaxLength,
	}

	promptIDs, err := p.Tokenizer.Encode(userPrompt, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize prompt: %w", err)
	}
	promptLen := len(promptIDs)

	inputIDs, err := p.Tokenizer.Encode(userPrompt+ex.Output+p.Tokenizer.EosMarker(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize example: %w", err)
	}

	labels := maskedLabels(inputIDs, []span{{Start: promptLen, End: len(inputIDs)}})

	processed := &ProcessedExample{InputIDs: inputIDs, Labels: labels}
	if p.WithLength {
		processed.Length = len(inputIDs)
	}
	return processed, nil
}

// ExampleLength returns the tokenized length of the full training
// rendering (prompt, answer and EOS marker), without truncation. Used
// to populate the transient length column for percentile budgeting.
func (p *InstructProcessor) ExampleLength(ex dataset.Instruct) (int, error) {
	training, err := p.Template.TrainingPrompt(ex)
	if err != nil {
		return 0, err
	}

	ids, err := p.Tokenizer.Encode(training+p.Tokenizer.EosMarker(), tokenizer.Options{AddSpecialTokens: true})
	if err != nil {
		return 0, fmt.Errorf("failed to tokenize example: %w", err)
	}
	return len(ids), nil
}

// SourceTargetLength returns the tokenized lengths of the prompt
// (source) and of the answer plus EOS marker (target) separately.
// Seq2seq budgeting derives independent source and target ceilings
// from these.
func (p *InstructProcessor) SourceTargetLength(ex dataset.Instruct) (int, int, error) {
	userPrompt, err := p.Template.InferencePrompt(ex)
	if err != nil {
		return 0, 0, err
	}
	if ex.Output == "" {
		return 0, 0, &prompt.MissingFieldError{Field: "output"}
	}

	sourceIDs, err := p.Tokenizer.Encode(userPrompt, tokenizer.Options{AddSpecialTokens: true})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to tokenize prompt: %w", err)
	}

	targetIDs, err := p.Tokenizer.Encode(ex.Output+p.Tokenizer.EosMarker(), tokenizer.Options{AddSpecialTokens: true})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to tokenize output: %w", err)
	}

	return len(sourceIDs), len(targetIDs), nil
}
