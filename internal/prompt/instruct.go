package prompt

import (
	"strings"

	"github.com/lamora-ml/lamora/internal/dataset"
)

// InstructTemplate renders prompts for single-turn instruction examples.
//
// The rendered prompt is identical for training and inference; training
// additionally appends the expected output.
type InstructTemplate struct{}

// NewInstructTemplate creates a new instruct template.
func NewInstructTemplate() *InstructTemplate {
	return &InstructTemplate{}
}

// InferencePrompt renders the prompt without the answer.
//
// The format depends on whether the example carries an input:
//
//	"Instruction: {instruction} Entrée: {input}"
//	"Instruction: {instruction}"
func (t *InstructTemplate) InferencePrompt(ex dataset.Instruct) (string, error) {
	if ex.Instruction == "" {
		return "", &MissingFieldError{Field: "instruction"}
	}

	var sb strings.Builder
	sb.WriteString("Instruction: ")
	sb.WriteString(ex.Instruction)
	if ex.Input != "" {
		sb.WriteString(" Entrée: ")
		sb.WriteString(ex.Input)
	}
	return sb.String(), nil
}

// TrainingPrompt renders the prompt with the answer appended.
func (t *InstructTemplate) TrainingPrompt(ex dataset.Instruct) (string, error) {
	if ex.Output == "" {
		return "", &MissingFieldError{Field: "output"}
	}

	inference, err := t.InferencePrompt(ex)
	if err != nil {
		return "", err
	}
	return inference + ex.Output, nil
}
