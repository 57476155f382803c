// Package tokenizer provides text tokenization for dataset preparation.
//
// This package wraps the internal tokenizer implementations and provides
// a clean public API for tokenization tasks.
//
// Supported tokenizers:
//   - TikToken: OpenAI BPE encodings (GPT-3, GPT-4)
//   - HuggingFace: tokenizer.json models via sugarme/tokenizer
//   - WordLevel: deterministic whitespace tokenizer for tests and dry runs
//
// Example usage:
//
//	import "github.com/lamora-ml/lamora/tokenizer"
//
//	// Load tiktoken
//	tok, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode text with a truncation ceiling
//	ids, err := tok.Encode("Bonjour le monde", tokenizer.Options{
//	    AddSpecialTokens: true,
//	    Truncation:       true,
//	    MaxLength:        512,
//	})
package tokenizer

import (
	"github.com/lamora-ml/lamora/internal/tokenizer"
)

// Tokenizer is the core interface for text tokenization.
//
// All tokenizer implementations must implement this interface.
type Tokenizer = tokenizer.Tokenizer

// Options controls a single Encode call.
type Options = tokenizer.Options

// NewTikToken creates a new TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" (GPT-3).
func NewTikToken(encodingName string) (Tokenizer, error) {
	return tokenizer.NewTikToken(encodingName)
}

// NewTikTokenForModel creates a TikToken tokenizer for a specific model.
//
// Example models: "gpt-4", "gpt-3.5-turbo", "text-embedding-ada-002".
func NewTikTokenForModel(modelName string) (Tokenizer, error) {
	return tokenizer.NewTikTokenForModel(modelName)
}

// NewHuggingFace loads a tokenizer from a tokenizer.json file or a
// model directory containing one.
func NewHuggingFace(path string) (Tokenizer, error) {
	return tokenizer.NewHuggingFace(path)
}

// NewWordLevel creates a deterministic whitespace tokenizer.
func NewWordLevel() Tokenizer {
	return tokenizer.NewWordLevel()
}
