package service

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecursiveSplitter_SingleChunkKeepsBody(t *testing.T) {
	splitter := NewRecursiveSplitter(DefaultChunkConfig())
	body := "Sentence one. Sentence two. Sentence three."

	chunks, err := splitter.SplitText(body)

	require.NoError(t, err)
	assert.Equal(t, []string{body}, chunks)
}

func numberedSentences(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("S%02d.", i+1)
	}
	return strings.Join(parts, " ")
}

func TestRecursiveSplitter_ChunkBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ChunkConfig
		text     string
		overlaps bool
	}{
		{
			name: "long sentences",
			cfg:  DefaultChunkConfig(),
			text: strings.TrimSpace(strings.Repeat("Keep going when the work gets hard and take notes along the way. ", 12)),
		},
		{
			name:     "short sentences overlap",
			cfg:      ChunkConfig{Size: 40, Overlap: 10},
			text:     numberedSentences(40),
			overlaps: true,
		},
		{
			name: "mixed separators",
			cfg:  ChunkConfig{Size: 30, Overlap: 5},
			text: "Why now? Because it matters! Fine.\nNext line here. And again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			splitter := NewRecursiveSplitter(cfg)

			chunks, err := splitter.SplitText(tt.text)
			require.NoError(t, err)
			require.Greater(t, len(chunks), 1)

			for i, c := range chunks {
				assert.LessOrEqual(t, utf8.RuneCountInString(c), cfg.Size, "chunk %d too long", i)
				first, _ := utf8.DecodeRuneInString(c)
				assert.NotContains(t, ".!?", string(first), "chunk %d starts with a separator: %q", i, c)
				last, _ := utf8.DecodeLastRuneInString(c)
				assert.Contains(t, ".!?", string(last), "chunk %d does not end with a separator: %q", i, c)
			}

			// Walk the chunks through the text: each must follow the previous
			// one without a gap, and dropping the overlap rebuilds the text.
			var rebuilt strings.Builder
			prevStart, prevEnd := -1, 0
			sawOverlap := false
			for i, c := range chunks {
				idx := strings.Index(tt.text[prevStart+1:], c)
				require.GreaterOrEqual(t, idx, 0, "chunk %d not found in order: %q", i, c)
				idx += prevStart + 1

				if i == 0 {
					assert.Equal(t, 0, idx)
				}
				if idx < prevEnd {
					sawOverlap = true
					rebuilt.WriteString(c[prevEnd-idx:])
				} else {
					gap := tt.text[prevEnd:idx]
					assert.Empty(t, strings.TrimSpace(gap), "text lost between chunks %d and %d", i-1, i)
					rebuilt.WriteString(gap)
					rebuilt.WriteString(c)
				}
				prevStart, prevEnd = idx, idx+len(c)
			}

			assert.Equal(t, tt.text, rebuilt.String())
			assert.Equal(t, tt.overlaps, sawOverlap)
		})
	}
}

func TestRecursiveSplitter_RespectsChunkSize(t *testing.T) {
	splitter := NewRecursiveSplitter(DefaultChunkConfig())

	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("Keep going when the work gets hard and take notes along the way. ")
	}

	chunks, err := splitter.SplitText(b.String())

	require.NoError(t, err)
	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 300)
		assert.NotEmpty(t, c)
	}
}

func TestRecursiveSplitter_Empty(t *testing.T) {
	splitter := NewRecursiveSplitter(ChunkConfig{})

	chunks, err := splitter.SplitText("   \n ")

	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestNewRecursiveSplitter_FixesBadOverlap(t *testing.T) {
	splitter := NewRecursiveSplitter(ChunkConfig{Size: 50, Overlap: 80})

	chunks, err := splitter.SplitText(strings.Repeat("Short line here.\n", 20))

	require.NoError(t, err)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 50)
	}
}
