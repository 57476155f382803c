// Package process converts raw dataset examples into training tensors:
// token-id sequences paired with loss-masked label sequences.
//
// Two processors exist, one per dataset schema. Both guarantee that
// labels and input IDs have equal length and that every unmasked label
// equals the input token at the same position.
package process

// IgnoreIndex is the sentinel label value excluded from loss
// computation by the training framework.
const IgnoreIndex int32 = -100

// ProcessedExample is one example converted to training tensors.
//
// Invariants: len(InputIDs) == len(Labels); every Labels[i] is either
// IgnoreIndex or equal to InputIDs[i].
type ProcessedExample struct {
	InputIDs []int32 `json:"input_ids"`
	Labels   []int32 `json:"labels"`

	// Length is the token count of InputIDs, populated only when the
	// processor is configured with WithLength.
	Length int `json:"length,omitempty"`
}

// span is a half-open token-index interval [Start, End) marking a
// contiguous run of trainable labels.
type span struct {
	Start int
	End   int
}

// clip bounds the span to a sequence of length n.
func (s span) clip(n int) span {
	if s.Start > n {
		s.Start = n
	}
	if s.End > n {
		s.End = n
	}
	return s
}

// maskedLabels builds an all-ignore label vector of length n with
// inputIDs copied back at each span, clipped to the sequence length.
// Spans never overlap: they are emitted left to right from a
// monotonically growing sequence.
func maskedLabels(inputIDs []int32, spans []span) []int32 {
	labels := make([]int32, len(inputIDs))
	for i := range labels {
		labels[i] = IgnoreIndex
	}
	for _, s := range spans {
		s = s.clip(len(inputIDs))
		copy(labels[s.Start:s.End], inputIDs[s.Start:s.End])
	}
	return labels
}
