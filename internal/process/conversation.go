package process

import (
	"fmt"

	"github.com/lamora-ml/lamora/internal/dataset"
	"github.com/lamora-ml/lamora/internal/prompt"
	"github.com/lamora-ml/lamora/internal/tokenizer"
)

// ConversationProcessor converts multi-turn chat examples into training
// tensors with per-turn loss masking.
//
// System message, user turns and all format tokens are masked; only
// assistant answers (each followed by the EOS token) train. Setting
// MaskInput to false disables masking entirely, for continued
// pretraining where every token trains.
type ConversationProcessor struct {
	Template  *prompt.ConversationTemplate
	Tokenizer tokenizer.Tokenizer

	// ModelMaxLength is the hard truncation ceiling in tokens.
	// 0 means no ceiling.
	ModelMaxLength int

	// MaskInput masks everything except assistant answers.
	MaskInput bool

	// WithLength populates ProcessedExample.Length.
	WithLength bool
}

// NewConversationProcessor creates a processor over the given tokenizer
// with the default conversation template and input masking on.
func NewConversationProcessor(tok tokenizer.Tokenizer, modelMaxLength int) *ConversationProcessor {
	return &ConversationProcessor{
		Template:       prompt.NewConversationTemplate(),
		Tokenizer:      tok,
		ModelMaxLength: modelMaxLength,
		MaskInput:      true,
	}
}

// rolePrefixIDs tokenizes the "\n{prefix}:" marker for a role, without
// automatic special tokens. Tokenizers that prepend a start-of-sequence
// token regardless get it stripped, so the result covers only the
// literal prefix text.
func (p *ConversationProcessor) rolePrefixIDs(role string) ([]int32, error) {
	ids, err := p.Tokenizer.Encode(p.Template.RolePrefix(role), tokenizer.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %s prefix: %w", role, err)
	}
	if len(ids) > 0 && ids[0] == p.Tokenizer.BosToken() {
		ids = ids[1:]
	}
	return ids, nil
}

// Process converts one example.
//
// The running sequence starts with the system block (which contributes
// the sequence-start token), then accumulates prefix+content tokens per
// turn. Assistant content spans are recorded as they are appended and
// re-applied to the labels after the hard truncation, clipped to the
// truncated length.
func (p *ConversationProcessor) Process(ex dataset.Conversation) (*ProcessedExample, error) {
	inputIDs, err := p.Tokenizer.Encode(p.Template.System(ex)+"\n", tokenizer.Options{AddSpecialTokens: true})
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize system message: %w", err)
	}

	userPrefixIDs, err := p.rolePrefixIDs(dataset.RoleUser)
	if err != nil {
		return nil, err
	}
	assistantPrefixIDs, err := p.rolePrefixIDs(dataset.RoleAssistant)
	if err != nil {
		return nil, err
	}

	var spans []span
	for _, turn := range ex.Conversation {
		if turn.Content == "" {
			return nil, &prompt.MissingFieldError{Field: "content"}
		}

		text := turn.Content
		prefixIDs := userPrefixIDs
		if turn.Role == dataset.RoleAssistant {
			text += p.Tokenizer.EosMarker()
			prefixIDs = assistantPrefixIDs
		}

		messageIDs, err := p.Tokenizer.Encode(text, tokenizer.Options{})
		if err != nil {
			return nil, fmt.Errorf("failed to tokenize turn: %w", err)
		}

		inputIDs = append(inputIDs, prefixIDs...)
		inputIDs = append(inputIDs, messageIDs...)

		if turn.Role == dataset.RoleAssistant {
			spans = append(spans, span{Start: len(inputIDs) - len(messageIDs), End: len(inputIDs)})
		}
	}

	// Hard cutoff, no re-balancing. Spans are clipped during masking.
	if p.ModelMaxLength > 0 && len(inputIDs) > p.ModelMaxLength {
		inputIDs = inputIDs[:p.ModelMaxLength]
	}

	var labels []int32
	if p.MaskInput {
		labels = maskedLabels(inputIDs, spans)
	} else {
		labels = make([]int32, len(inputIDs))
		copy(labels, inputIDs)
	}

	processed := &ProcessedExample{InputIDs: inputIDs, Labels: labels}
	if p.WithLength {
		processed.Length = len(inputIDs)
	}
	return processed, nil
}

// ExampleLength returns the tokenized length of the full training
// rendering, without truncation. The rendering already embeds the EOS
// marker after each assistant turn.
func (p *ConversationProcessor) ExampleLength(ex dataset.Conversation) (int, error) {
	training, err := p.Template.TrainingPrompt(ex, p.Tokenizer.EosMarker())
	if err != nil {
		return 0, err
	}

	ids, err := p.Tokenizer.Encode(training, tokenizer.Options{AddSpecialTokens: true})
	if err != nil {
		return 0, fmt.Errorf("failed to tokenize example: %w", err)
	}
	return len(ids), nil
}
