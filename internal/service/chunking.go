package service

import (
	"slices"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// Splitter turns a document body into ordered, overlapping windows.
type Splitter interface {
	SplitText(text string) ([]string, error)
}

// ChunkConfig controls how transcript bodies are split into quotes.
type ChunkConfig struct {
	Size    int
	Overlap int
	// Separators are tried in order; the first that yields small enough
	// pieces wins.
	Separators []string
}

// DefaultChunkConfig splits at sentence-ending punctuation, then newlines.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		Size:       300,
		Overlap:    20,
		Separators: []string{".", "!", "?", "\n"},
	}
}

// NewRecursiveSplitter builds a recursive character splitter that keeps each
// separator at the end of the chunk it closes.
func NewRecursiveSplitter(cfg ChunkConfig) Splitter {
	defaults := DefaultChunkConfig()
	if cfg.Size <= 0 {
		cfg.Size = defaults.Size
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.Size {
		cfg.Overlap = defaults.Overlap
	}
	separators := slices.DeleteFunc(slices.Clone(cfg.Separators), func(s string) bool { return s == "" })
	if len(separators) == 0 {
		separators = defaults.Separators
	}

	// langchaingo's keep-separator mode glues a separator to the front of
	// the next piece. Instead every separator is followed by a marker rune,
	// the inner splitter splits on the markers, and the markers are removed
	// from its output.
	markers := make([]string, len(separators))
	var mark, unmark []string
	for i, sep := range separators {
		markers[i] = string(rune(markerBase + i))
		mark = append(mark, sep, sep+markers[i])
		unmark = append(unmark, markers[i], "")
	}

	return recursiveSplitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.Size),
			textsplitter.WithChunkOverlap(cfg.Overlap),
			textsplitter.WithSeparators(markers),
			textsplitter.WithKeepSeparator(false),
		),
		mark:   strings.NewReplacer(mark...),
		unmark: strings.NewReplacer(unmark...),
	}
}

// Start of the Unicode private use area; transcripts never contain it.
const markerBase = 0xE000

// recursiveSplitter trims chunks and drops empty ones.
type recursiveSplitter struct {
	inner  textsplitter.TextSplitter
	mark   *strings.Replacer
	unmark *strings.Replacer
}

func (s recursiveSplitter) SplitText(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	raw, err := s.inner.SplitText(s.mark.Replace(text))
	if err != nil {
		return nil, err
	}

	chunks := make([]string, 0, len(raw))
	for _, c := range raw {
		if c = strings.TrimSpace(s.unmark.Replace(c)); c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks, nil
}
