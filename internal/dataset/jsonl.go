package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// maxLineBytes bounds a single JSONL record. Conversation records with
// long assistant answers routinely exceed bufio's 64 KiB default.
const maxLineBytes = 16 * 1024 * 1024

// LoadInstruct reads an instruct-schema JSON Lines file.
//
// A record that does not match the schema (missing instruction or
// output, or carrying a conversation payload) fails the whole load with
// a SchemaMismatchError: schema is a dataset-wide configuration choice,
// not a per-record property.
func LoadInstruct(path string) ([]Instruct, error) {
	var examples []Instruct
	err := scanLines(path, func(line int, data []byte) error {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(data, &probe); err != nil {
			return &SchemaMismatchError{File: path, Line: line, Schema: SchemaInstruct, Reason: err.Error()}
		}
		if _, ok := probe["conversation"]; ok {
			return &SchemaMismatchError{File: path, Line: line, Schema: SchemaInstruct, Reason: "record carries a conversation payload"}
		}

		var ex Instruct
		if err := json.Unmarshal(data, &ex); err != nil {
			return &SchemaMismatchError{File: path, Line: line, Schema: SchemaInstruct, Reason: err.Error()}
		}
		if ex.Instruction == "" {
			return &SchemaMismatchError{File: path, Line: line, Schema: SchemaInstruct, Reason: "missing instruction"}
		}
		if ex.Output == "" {
			return &SchemaMismatchError{File: path, Line: line, Schema: SchemaInstruct, Reason: "missing output"}
		}

		examples = append(examples, ex)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return examples, nil
}

// LoadConversations reads a conversation-schema JSON Lines file.
//
// Besides the schema fields, conversations are validated structurally:
// roles limited to user/assistant, non-empty content, and no two
// consecutive turns sharing a role (the processors' span bookkeeping
// relies on alternation).
func LoadConversations(path string) ([]Conversation, error) {
	var examples []Conversation
	err := scanLines(path, func(line int, data []byte) error {
		var ex Conversation
		if err := json.Unmarshal(data, &ex); err != nil {
			return &SchemaMismatchError{File: path, Line: line, Schema: SchemaConversation, Reason: err.Error()}
		}
		if len(ex.Conversation) == 0 {
			return &SchemaMismatchError{File: path, Line: line, Schema: SchemaConversation, Reason: "empty conversation"}
		}

		prevRole := ""
		for i, turn := range ex.Conversation {
			if turn.Role != RoleUser && turn.Role != RoleAssistant {
				return &SchemaMismatchError{
					File: path, Line: line, Schema: SchemaConversation,
					Reason: fmt.Sprintf("turn %d has unknown role %q", i, turn.Role),
				}
			}
			if turn.Content == "" {
				return &SchemaMismatchError{
					File: path, Line: line, Schema: SchemaConversation,
					Reason: fmt.Sprintf("turn %d has empty content", i),
				}
			}
			if turn.Role == prevRole {
				return &SchemaMismatchError{
					File: path, Line: line, Schema: SchemaConversation,
					Reason: fmt.Sprintf("turns %d and %d share role %q", i-1, i, turn.Role),
				}
			}
			prevRole = turn.Role
		}

		examples = append(examples, ex)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return examples, nil
}

// scanLines calls fn for each non-empty line of a JSONL file.
func scanLines(path string, fn func(line int, data []byte) error) error {
	file, err := os.Open(path) //nolint:gosec // G304: dataset path comes from user configuration.
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		if err := fn(line, data); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}
	return nil
}

// WriteJSONL writes records to a JSON Lines file, one record per line.
func WriteJSONL[T any](path string, records []T) error {
	file, err := os.Create(path) //nolint:gosec // G304: output path comes from user configuration.
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	return file.Close()
}
