// Package collate assembles variable-length processed examples into
// padded, rectangular training batches.
package collate

import (
	"fmt"

	"github.com/lamora-ml/lamora/internal/process"
)

// Batch is one rectangular training batch.
//
// All three fields share the shape [batch, seq_len]. AttentionMask is
// derived from the recorded pre-padding row lengths: a position is
// attended iff it held a real token before padding, so a vocabulary
// token that happens to equal the pad ID stays attended.
type Batch struct {
	InputIDs      [][]int32
	Labels        [][]int32
	AttentionMask [][]bool
}

// Collator pads batches of processed examples to a rectangle.
//
// Input IDs are right-padded with the tokenizer's pad token, labels
// with the ignore sentinel. With PadToMultipleOf set, the target length
// is additionally rounded up to the next multiple, which keeps tensor
// shapes aligned to hardware tile boundaries.
type Collator struct {
	PadTokenID      int32
	PadToMultipleOf int // 0 disables multiple-of rounding
}

// NewCollator creates a collator padding with the given token ID.
func NewCollator(padTokenID int32, padToMultipleOf int) *Collator {
	return &Collator{
		PadTokenID:      padTokenID,
		PadToMultipleOf: padToMultipleOf,
	}
}

// targetLength returns the padded row length for a batch maximum:
// the maximum itself, rounded up to the configured multiple.
func (c *Collator) targetLength(maxLen int) int {
	if c.PadToMultipleOf <= 0 {
		return maxLen
	}
	n := c.PadToMultipleOf
	return (maxLen + n - 1) / n * n
}

// Collate assembles one batch.
//
// The target length is computed once per field (input IDs and labels
// independently, from that field's longest row) and every row is padded
// to it. A ProcessedExample always has equally long input IDs and
// labels, so the two targets coincide and the batch is rectangular.
func (c *Collator) Collate(examples []process.ProcessedExample) (*Batch, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("cannot collate an empty batch")
	}

	maxInputLen := 0
	maxLabelLen := 0
	for _, ex := range examples {
		maxInputLen = max(maxInputLen, len(ex.InputIDs))
		maxLabelLen = max(maxLabelLen, len(ex.Labels))
	}
	inputTarget := c.targetLength(maxInputLen)
	labelTarget := c.targetLength(maxLabelLen)

	batch := &Batch{
		InputIDs:      make([][]int32, len(examples)),
		Labels:        make([][]int32, len(examples)),
		AttentionMask: make([][]bool, len(examples)),
	}

	for i, ex := range examples {
		batch.InputIDs[i] = padRow(ex.InputIDs, inputTarget, c.PadTokenID)
		batch.Labels[i] = padRow(ex.Labels, labelTarget, process.IgnoreIndex)

		mask := make([]bool, inputTarget)
		for j := 0; j < len(ex.InputIDs); j++ {
			mask[j] = true
		}
		batch.AttentionMask[i] = mask
	}

	return batch, nil
}

// padRow right-pads row to length n with the given value.
func padRow(row []int32, n int, pad int32) []int32 {
	out := make([]int32, n)
	copy(out, row)
	for j := len(row); j < n; j++ {
		out[j] = pad
	}
	return out
}
