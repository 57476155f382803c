package dataset

import "fmt"

// MergeInstruct concatenates several instruct JSONL files into one.
//
// Each record is filtered down to the schema's known keys as a side
// effect of decoding into the typed record; provenance fields and other
// extras are dropped. Returns the total number of records written.
func MergeInstruct(inputs []string, output string) (int, error) {
	var merged []Instruct
	for _, input := range inputs {
		examples, err := LoadInstruct(input)
		if err != nil {
			return 0, fmt.Errorf("failed to load %s: %w", input, err)
		}
		merged = append(merged, examples...)
	}

	if err := WriteJSONL(output, merged); err != nil {
		return 0, err
	}
	return len(merged), nil
}

// MergeConversations concatenates several conversation JSONL files into
// one, with the same key filtering as MergeInstruct.
func MergeConversations(inputs []string, output string) (int, error) {
	var merged []Conversation
	for _, input := range inputs {
		examples, err := LoadConversations(input)
		if err != nil {
			return 0, fmt.Errorf("failed to load %s: %w", input, err)
		}
		merged = append(merged, examples...)
	}

	if err := WriteJSONL(output, merged); err != nil {
		return 0, err
	}
	return len(merged), nil
}
