package dataset

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// hc3Record is one row of an HC3-style question/answers dump.
type hc3Record struct {
	ID             string   `json:"id"`
	Question       string   `json:"question"`
	HumanAnswers   []string `json:"human_answers"`
	ChatGPTAnswers []string `json:"chatgpt_answers"`
}

// ConvertHC3 converts an HC3-style JSONL dump into instruct records.
//
// Each question/answer pair becomes one record (question as the
// instruction, empty input, answer as the output); only the model
// answers are kept. Rows are shuffled with the given seed, then
// deduplicated by id keeping the first occurrence, so the retained
// answer per question is seed-dependent but reproducible.
func ConvertHC3(input, output string, seed int64) (int, error) {
	var rows []hc3Record
	err := scanLines(input, func(line int, data []byte) error {
		var row hc3Record
		if err := json.Unmarshal(data, &row); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return 0, err
	}

	type candidate struct {
		id string
		ex Instruct
	}
	var candidates []candidate
	for _, row := range rows {
		for _, answer := range row.ChatGPTAnswers {
			if row.Question == "" || answer == "" {
				continue
			}
			candidates = append(candidates, candidate{
				id: row.ID,
				ex: Instruct{Instruction: row.Question, Input: "", Output: answer},
			})
		}
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // Deterministic shuffle for reproducible dataset prep.
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	seen := make(map[string]bool, len(candidates))
	var examples []Instruct
	for _, c := range candidates {
		if seen[c.id] {
			continue
		}
		seen[c.id] = true
		examples = append(examples, c.ex)
	}

	if err := WriteJSONL(output, examples); err != nil {
		return 0, err
	}
	return len(examples), nil
}
