package tokenizer

import (
	"fmt"
	"os"
	"path/filepath"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Candidate special-token spellings, checked in order against the vocab.
var (
	bosCandidates = []string{"<s>", "<|begin_of_text|>", "[CLS]"}
	eosCandidates = []string{"</s>", "<|end_of_text|>", "<|endoftext|>", "[SEP]"}
	padCandidates = []string{"<pad>", "[PAD]", "<|pad|>"}
	unkCandidates = []string{"<unk>", "[UNK]"}
)

// HuggingFace wraps a sugarme/tokenizer model loaded from tokenizer.json.
//
// This covers the pretrained-model path: the same tokenizer files the
// external training framework loads for the model being fine-tuned.
type HuggingFace struct {
	tok  *tk.Tokenizer
	name string

	bosID, eosID, padID, unkID int32
	eosMarker                  string
}

// NewHuggingFace loads a tokenizer from a tokenizer.json file or from a
// model directory containing one.
func NewHuggingFace(path string) (*HuggingFace, error) {
	configFile := path
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		configFile = filepath.Join(path, "tokenizer.json")
	}

	tok, err := pretrained.FromFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer from %q: %w", configFile, err)
	}

	h := &HuggingFace{
		tok:   tok,
		name:  filepath.Base(configFile),
		bosID: -1,
		eosID: -1,
		padID: -1,
		unkID: -1,
	}

	h.bosID, _ = firstKnownToken(tok, bosCandidates)
	h.eosID, h.eosMarker = firstKnownToken(tok, eosCandidates)
	h.padID, _ = firstKnownToken(tok, padCandidates)
	h.unkID, _ = firstKnownToken(tok, unkCandidates)

	if h.eosID < 0 {
		return nil, fmt.Errorf("tokenizer %q defines no end-of-sequence token", configFile)
	}
	if h.padID < 0 {
		// GPT-style vocabularies reuse EOS for padding.
		h.padID = h.eosID
	}

	return h, nil
}

// firstKnownToken returns the ID and spelling of the first candidate
// present in the vocabulary, or (-1, "") if none is.
func firstKnownToken(tok *tk.Tokenizer, candidates []string) (int32, string) {
	for _, c := range candidates {
		if id, ok := tok.TokenToId(c); ok {
			return int32(id), c //nolint:gosec // G115: Token ID fits in int32 - vocab size < 2^31.
		}
	}
	return -1, ""
}

// Encode converts text to token IDs.
//
// opts.AddSpecialTokens maps to the underlying encoder's special-token
// handling (post-processor templates such as BOS prepending); the EOS
// marker encodes through the vocabulary's added tokens.
func (h *HuggingFace) Encode(text string, opts Options) ([]int32, error) {
	enc, err := h.tok.EncodeSingle(text, opts.AddSpecialTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to encode text: %w", err)
	}

	result := make([]int32, len(enc.Ids))
	for i, id := range enc.Ids {
		result[i] = int32(id) //nolint:gosec // G115: Token ID fits in int32 - vocab size < 2^31.
	}

	return Truncate(result, opts), nil
}

// Decode converts token IDs back to text.
func (h *HuggingFace) Decode(tokens []int32) (string, error) {
	intTokens := make([]int, len(tokens))
	for i, tok := range tokens {
		intTokens[i] = int(tok)
	}

	return h.tok.Decode(intTokens, true), nil
}

// VocabSize returns the total vocabulary size, added tokens included.
func (h *HuggingFace) VocabSize() int {
	return int(h.tok.GetVocabSize(true))
}

// BosToken returns the beginning-of-sequence token ID, or -1.
func (h *HuggingFace) BosToken() int32 {
	return h.bosID
}

// EosToken returns the end-of-sequence token ID.
func (h *HuggingFace) EosToken() int32 {
	return h.eosID
}

// PadToken returns the padding token ID.
func (h *HuggingFace) PadToken() int32 {
	return h.padID
}

// UnkToken returns the unknown token ID, or -1.
func (h *HuggingFace) UnkToken() int32 {
	return h.unkID
}

// EosMarker returns the textual end-of-sequence marker.
func (h *HuggingFace) EosMarker() string {
	return h.eosMarker
}

// Name returns the tokenizer name.
func (h *HuggingFace) Name() string {
	return h.name
}
