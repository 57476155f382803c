// Package prompt renders textual prompts from structured examples.
//
// Two template families exist, one per dataset schema: InstructTemplate
// for single-turn instruction examples and ConversationTemplate for
// multi-turn chat. Both render a "training" view (answers revealed) and
// an "inference" view (answers hidden).
package prompt

import "fmt"

// MissingFieldError reports a required template field absent from an
// example. It aborts that example's processing and propagates to the
// caller; nothing recovers it.
type MissingFieldError struct {
	Field string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("example is missing required field %q", e.Field)
}
