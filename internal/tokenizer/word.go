package tokenizer

import (
	"strings"
	"sync"
)

// Default special tokens for the word-level tokenizer, LLaMA-style.
const (
	wordPadToken = "<pad>"
	wordBosToken = "<s>"
	wordEosToken = "</s>"
	wordUnkToken = "<unk>"
)

// WordLevel is a deterministic whitespace tokenizer.
//
// It assigns vocabulary IDs on first sight, prepends BOS when asked for
// special tokens (mirroring LLaMA tokenizers), and encodes the literal
// "</s>" marker to the EOS token. It exists for tests and dry runs where
// a real subword vocabulary would add noise without adding coverage.
type WordLevel struct {
	mu      sync.Mutex
	vocab   map[string]int32
	reverse map[int32]string
}

// NewWordLevel creates an empty word-level tokenizer with the four
// special tokens pre-registered as IDs 0-3.
func NewWordLevel() *WordLevel {
	w := &WordLevel{
		vocab:   make(map[string]int32),
		reverse: make(map[int32]string),
	}
	for _, tok := range []string{wordPadToken, wordBosToken, wordEosToken, wordUnkToken} {
		w.register(tok)
	}
	return w
}

// register assigns the next free ID to token if it is new.
func (w *WordLevel) register(token string) int32 {
	if id, ok := w.vocab[token]; ok {
		return id
	}
	id := int32(len(w.vocab)) //nolint:gosec // G115: test vocabularies stay far below 2^31.
	w.vocab[token] = id
	w.reverse[id] = token
	return id
}

// Encode converts text to token IDs.
//
// Words are delimited by whitespace; "</s>" splits words wherever it
// appears, so "Bonjour</s>" encodes to the Bonjour token followed by EOS.
func (w *WordLevel) Encode(text string, opts Options) ([]int32, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids := []int32{}
	if opts.AddSpecialTokens {
		ids = append(ids, w.vocab[wordBosToken])
	}

	for i, segment := range strings.Split(text, wordEosToken) {
		if i > 0 {
			ids = append(ids, w.vocab[wordEosToken])
		}
		for _, word := range strings.Fields(segment) {
			ids = append(ids, w.register(word))
		}
	}

	return Truncate(ids, opts), nil
}

// Decode converts token IDs back to text, joining words with spaces.
func (w *WordLevel) Decode(tokens []int32) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if text, ok := w.reverse[tok]; ok {
			parts = append(parts, text)
		} else {
			parts = append(parts, wordUnkToken)
		}
	}
	return strings.Join(parts, " "), nil
}

// VocabSize returns the vocabulary size seen so far.
func (w *WordLevel) VocabSize() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.vocab)
}

// BosToken returns the beginning-of-sequence token ID.
func (w *WordLevel) BosToken() int32 {
	return w.lookup(wordBosToken)
}

// EosToken returns the end-of-sequence token ID.
func (w *WordLevel) EosToken() int32 {
	return w.lookup(wordEosToken)
}

// PadToken returns the padding token ID.
func (w *WordLevel) PadToken() int32 {
	return w.lookup(wordPadToken)
}

// UnkToken returns the unknown token ID.
func (w *WordLevel) UnkToken() int32 {
	return w.lookup(wordUnkToken)
}

// EosMarker returns the textual end-of-sequence marker.
func (w *WordLevel) EosMarker() string {
	return wordEosToken
}

// Name returns the tokenizer name.
func (w *WordLevel) Name() string {
	return "word-level"
}

func (w *WordLevel) lookup(token string) int32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.vocab[token]
}
