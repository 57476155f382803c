package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordLevel_Encode(t *testing.T) {
	tok := NewWordLevel()

	tests := []struct {
		name     string
		text     string
		opts     Options
		wantLen  int
		wantBos  bool
		wantTail int32 // expected last token, -1 to skip
	}{
		{
			name:     "plain words",
			text:     "Bonjour le monde",
			opts:     Options{},
			wantLen:  3,
			wantTail: -1,
		},
		{
			name:     "with special tokens",
			text:     "Bonjour le monde",
			opts:     Options{AddSpecialTokens: true},
			wantLen:  4,
			wantBos:  true,
			wantTail: -1,
		},
		{
			name:     "embedded eos marker",
			text:     "Bonjour</s>",
			opts:     Options{},
			wantLen:  2,
			wantTail: 2, // EOS id
		},
		{
			name:     "truncation",
			text:     "un deux trois quatre cinq",
			opts:     Options{Truncation: true, MaxLength: 3},
			wantLen:  3,
			wantTail: -1,
		},
		{
			name:     "empty text",
			text:     "",
			opts:     Options{},
			wantLen:  0,
			wantTail: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := tok.Encode(tt.text, tt.opts)
			require.NoError(t, err)
			assert.Len(t, ids, tt.wantLen)

			if tt.wantBos {
				assert.Equal(t, tok.BosToken(), ids[0])
			}
			if tt.wantTail >= 0 {
				assert.Equal(t, tt.wantTail, ids[len(ids)-1])
			}
		})
	}
}

func TestWordLevel_Determinism(t *testing.T) {
	tok := NewWordLevel()

	first, err := tok.Encode("le chat dort sur le tapis", Options{AddSpecialTokens: true})
	require.NoError(t, err)

	second, err := tok.Encode("le chat dort sur le tapis", Options{AddSpecialTokens: true})
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// Repeated words map to the same ID.
	assert.Equal(t, first[1], first[5], "both 'le' occurrences share an ID")
}

func TestWordLevel_SpecialTokens(t *testing.T) {
	tok := NewWordLevel()

	assert.Equal(t, int32(0), tok.PadToken())
	assert.Equal(t, int32(1), tok.BosToken())
	assert.Equal(t, int32(2), tok.EosToken())
	assert.Equal(t, int32(3), tok.UnkToken())
	assert.Equal(t, "</s>", tok.EosMarker())
	assert.Equal(t, 4, tok.VocabSize())
}

func TestWordLevel_Roundtrip(t *testing.T) {
	tok := NewWordLevel()

	ids, err := tok.Encode("le chat dort", Options{})
	require.NoError(t, err)

	text, err := tok.Decode(ids)
	require.NoError(t, err)
	assert.Equal(t, "le chat dort", text)
}

func TestTruncate(t *testing.T) {
	ids := []int32{1, 2, 3, 4, 5}

	assert.Len(t, Truncate(ids, Options{Truncation: true, MaxLength: 3}), 3)
	assert.Len(t, Truncate(ids, Options{Truncation: true, MaxLength: 0}), 5, "zero ceiling means unlimited")
	assert.Len(t, Truncate(ids, Options{Truncation: false, MaxLength: 3}), 5)
	assert.Len(t, Truncate(ids, Options{Truncation: true, MaxLength: 10}), 5)
}
