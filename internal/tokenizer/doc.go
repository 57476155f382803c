// Package tokenizer provides text tokenization for dataset preprocessing.
//
// Three implementations are available:
//   - TikToken: OpenAI BPE encodings via pkoukk/tiktoken-go
//   - HuggingFace: tokenizer.json models via sugarme/tokenizer
//   - WordLevel: deterministic whitespace tokenizer for tests and dry runs
//
// All implementations honor the same Encode contract: optional automatic
// special tokens, optional truncation to a ceiling, and an end-of-sequence
// marker that can be spliced into raw text before encoding.
package tokenizer
