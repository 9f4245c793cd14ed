package domain

import "fmt"

// Quote is a chunk of a transcription together with its embedding.
type Quote struct {
	ID                 int64
	Content            string
	Embedding          []float32
	TranscriptionTitle string
}

// RetrievedQuote is a row returned by nearest-neighbor search over quotes.
type RetrievedQuote struct {
	ID                 int64   `db:"id" json:"id"`
	Content            string  `db:"content" json:"content"`
	TranscriptionTitle string  `db:"transcription_title" json:"transcription_title"`
	Distance           float64 `db:"distance" json:"distance"`
}

// NewQuotes pairs chunk texts with their embeddings for one transcription.
func NewQuotes(title string, chunks []string, embeddings [][]float32) ([]Quote, error) {
	if len(chunks) != len(embeddings) {
		return nil, NewDomainErrorWithCause(
			ErrEmbeddingCountMismatch.Code,
			ErrEmbeddingCountMismatch.Message,
			fmt.Errorf("%d chunks, %d embeddings", len(chunks), len(embeddings)),
		)
	}

	quotes := make([]Quote, len(chunks))
	for i, chunk := range chunks {
		quotes[i] = Quote{
			Content:            chunk,
			Embedding:          embeddings[i],
			TranscriptionTitle: title,
		}
	}
	return quotes, nil
}

// EpisodeTitles returns the distinct transcription titles of the given
// quotes in first-seen order.
func EpisodeTitles(quotes []RetrievedQuote) []string {
	seen := make(map[string]struct{}, len(quotes))
	titles := make([]string, 0, len(quotes))
	for _, q := range quotes {
		if _, ok := seen[q.TranscriptionTitle]; ok {
			continue
		}
		seen[q.TranscriptionTitle] = struct{}{}
		titles = append(titles, q.TranscriptionTitle)
	}
	return titles
}
