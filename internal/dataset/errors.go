package dataset

import "fmt"

// SchemaMismatchError reports a record that does not match the dataset's
// configured schema. Schema is a pipeline-wide choice, so this error is
// fatal at the dataset level rather than a per-record skip.
type SchemaMismatchError struct {
	File   string
	Line   int
	Schema Schema
	Reason string
}

// Error implements the error interface.
func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s:%d: record does not match %s schema: %s", e.File, e.Line, e.Schema, e.Reason)
}
