package tokenizer

// Options controls a single Encode call.
type Options struct {
	// AddSpecialTokens enables the tokenizer's automatic sequence-start
	// behavior (e.g. a BOS token prepended by LLaMA-style tokenizers).
	AddSpecialTokens bool

	// Truncation enables truncation of the encoded sequence to MaxLength.
	Truncation bool

	// MaxLength is the truncation ceiling in tokens. Ignored unless
	// Truncation is set. 0 means no limit.
	MaxLength int
}

// Tokenizer is the core interface for text tokenization.
//
// All tokenizer implementations (tiktoken, HuggingFace, word-level)
// must implement this interface.
type Tokenizer interface {
	// Encode converts text to token IDs.
	//
	// Any occurrence of EosMarker() inside text encodes to the
	// end-of-sequence token ID, so callers can splice the marker into
	// raw text before tokenization.
	Encode(text string, opts Options) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)

	// VocabSize returns the total vocabulary size.
	VocabSize() int

	// BosToken returns the beginning-of-sequence token ID.
	// Returns -1 if not applicable.
	BosToken() int32

	// EosToken returns the end-of-sequence token ID.
	// Returns -1 if not applicable.
	EosToken() int32

	// PadToken returns the padding token ID.
	// Returns -1 if not applicable.
	PadToken() int32

	// UnkToken returns the unknown token ID.
	// Returns -1 if not applicable.
	UnkToken() int32

	// EosMarker returns the end-of-sequence marker as raw text
	// (e.g. "</s>"), insertable into text passed to Encode.
	EosMarker() string

	// Name returns the tokenizer name.
	Name() string
}

// Truncate applies the truncation policy of opts to an encoded sequence.
//
// Shared by implementations whose underlying library does not truncate
// on its own.
func Truncate(ids []int32, opts Options) []int32 {
	if opts.Truncation && opts.MaxLength > 0 && len(ids) > opts.MaxLength {
		return ids[:opts.MaxLength]
	}
	return ids
}
