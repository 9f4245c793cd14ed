package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuotes(t *testing.T) {
	chunks := []string{"Sentence one.", "Sentence two."}
	embeddings := [][]float32{{0.1, 0.2}, {0.3, 0.4}}

	quotes, err := NewQuotes("Episode 1", chunks, embeddings)
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "Sentence one.", quotes[0].Content)
	assert.Equal(t, []float32{0.1, 0.2}, quotes[0].Embedding)
	assert.Equal(t, "Episode 1", quotes[0].TranscriptionTitle)
	assert.Equal(t, "Sentence two.", quotes[1].Content)
	assert.Equal(t, "Episode 1", quotes[1].TranscriptionTitle)
}

func TestNewQuotes_CountMismatch(t *testing.T) {
	quotes, err := NewQuotes("Episode 1", []string{"a", "b"}, [][]float32{{0.1}})

	assert.Nil(t, quotes)
	assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
	assert.Contains(t, err.Error(), "2 chunks, 1 embeddings")
}

func TestEpisodeTitles(t *testing.T) {
	tests := []struct {
		name     string
		quotes   []RetrievedQuote
		expected []string
	}{
		{
			name:     "no quotes",
			quotes:   nil,
			expected: []string{},
		},
		{
			name: "distinct in first-seen order",
			quotes: []RetrievedQuote{
				{TranscriptionTitle: "Episode 2"},
				{TranscriptionTitle: "Episode 1"},
				{TranscriptionTitle: "Episode 2"},
			},
			expected: []string{"Episode 2", "Episode 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EpisodeTitles(tt.quotes))
		})
	}
}

func TestSchemaReport(t *testing.T) {
	var report SchemaReport
	report.Add("extension", VectorExtension, SchemaOutcomeExisted)
	report.Add("table", TranscriptionsTable, SchemaOutcomeCreated)
	report.Add("table", QuotesTable, SchemaOutcomeCreated)

	require.Len(t, report.Objects, 3)
	assert.Equal(t, []string{"transcriptions", "quotes"}, report.Created())
	assert.Equal(t, SchemaOutcome("existed"), report.Objects[0].Outcome)
}
