package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamora-ml/lamora/internal/dataset"
	"github.com/lamora-ml/lamora/internal/prompt"
	"github.com/lamora-ml/lamora/internal/tokenizer"
)

// assertAligned checks the two ProcessedExample invariants: equal
// lengths, and every unmasked label equal to its input token.
func assertAligned(t *testing.T, ex *ProcessedExample) {
	t.Helper()
	require.Equal(t, len(ex.InputIDs), len(ex.Labels))
	for i, label := range ex.Labels {
		if label != IgnoreIndex {
			assert.Equal(t, ex.InputIDs[i], label, "label at %d", i)
		}
	}
}

// countIgnored returns the number of masked label positions.
func countIgnored(labels []int32) int {
	n := 0
	for _, l := range labels {
		if l == IgnoreIndex {
			n++
		}
	}
	return n
}

func TestInstructProcessor_Process(t *testing.T) {
	tok := tokenizer.NewWordLevel()
	proc := NewInstructProcessor(tok, 0)

	ex := dataset.Instruct{
		Instruction: "Translate to French",
		Input:       "",
		Output:      "Bonjour",
	}

	processed, err := proc.Process(ex)
	require.NoError(t, err)
	assertAligned(t, processed)

	// The masked region covers exactly the tokens of the rendered prompt.
	promptIDs, err := tok.Encode("Instruction: Translate to French", tokenizer.Options{AddSpecialTokens: true})
	require.NoError(t, err)
	assert.Equal(t, len(promptIDs), countIgnored(processed.Labels))

	// Everything after the prompt boundary trains.
	assert.NotEqual(t, IgnoreIndex, processed.Labels[len(processed.Labels)-1])
	assert.Equal(t, tok.EosToken(), processed.InputIDs[len(processed.InputIDs)-1])
}

func TestInstructProcessor_TruncationIntoPrompt(t *testing.T) {
	tok := tokenizer.NewWordLevel()
	proc := NewInstructProcessor(tok, 3)

	ex := dataset.Instruct{
		Instruction: "Translate to French please now",
		Output:      "Bonjour",
	}

	processed, err := proc.Process(ex)
	require.NoError(t, err)
	assertAligned(t, processed)

	// The ceiling cuts inside the prompt: the whole sequence is masked,
	// no out-of-range access.
	assert.Len(t, processed.InputIDs, 3)
	assert.Equal(t, 3, countIgnored(processed.Labels))
}

func TestInstructProcessor_Determinism(t *testing.T) {
	tok := tokenizer.NewWordLevel()
	proc := NewInstructProcessor(tok, 8)

	ex := dataset.Instruct{
		Instruction: "Summarize",
		Input:       "Long text.",
		Output:      "Short.",
	}

	first, err := proc.Process(ex)
	require.NoError(t, err)
	second, err := proc.Process(ex)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestInstructProcessor_LengthColumn(t *testing.T) {
	tok := tokenizer.NewWordLevel()

	proc := NewInstructProcessor(tok, 0)
	proc.WithLength = true

	processed, err := proc.Process(dataset.Instruct{Instruction: "Compte", Output: "Un deux"})
	require.NoError(t, err)
	assert.Equal(t, len(processed.InputIDs), processed.Length)

	proc.WithLength = false
	processed, err = proc.Process(dataset.Instruct{Instruction: "Compte", Output: "Un deux"})
	require.NoError(t, err)
	assert.Zero(t, processed.Length)
}

func TestInstructProcessor_MissingFields(t *testing.T) {
	proc := NewInstructProcessor(tokenizer.NewWordLevel(), 0)

	tests := []struct {
		name    string
		example dataset.Instruct
		field   string
	}{
		{name: "no instruction", example: dataset.Instruct{Output: "x"}, field: "instruction"},
		{name: "no output", example: dataset.Instruct{Instruction: "x"}, field: "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := proc.Process(tt.example)
			var missing *prompt.MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.field, missing.Field)
		})
	}
}

func TestInstructProcessor_Lengths(t *testing.T) {
	tok := tokenizer.NewWordLevel()
	proc := NewInstructProcessor(tok, 2) // ceiling must not affect length estimation

	ex := dataset.Instruct{Instruction: "Translate to French", Output: "Bonjour"}

	t.Run("example length", func(t *testing.T) {
		n, err := proc.ExampleLength(ex)
		require.NoError(t, err)
		// BOS, Instruction:, Translate, to, FrenchBonjour, EOS.
		assert.Equal(t, 6, n)
	})

	t.Run("source and target lengths", func(t *testing.T) {
		source, target, err := proc.SourceTargetLength(ex)
		require.NoError(t, err)
		assert.Equal(t, 5, source) // BOS + 4 prompt words
		assert.Equal(t, 3, target) // BOS, Bonjour, EOS
	})
}
