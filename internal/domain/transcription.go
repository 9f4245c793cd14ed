package domain

import "fmt"

// Metadata is the JSON record stored in transcriptions.meta.
type Metadata struct {
	Title       string `json:"title"`
	Show        string `json:"show"`
	Network     string `json:"network"`
	NetworkURL  string `json:"network_url"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PubDate     string `json:"pub_date"` // ISO 8601 date, YYYY-MM-DD
}

// Transcription is one ingested document, keyed by its title.
type Transcription struct {
	Title   string
	Content string
	Meta    Metadata
}

// NewTranscription creates a new Transcription instance
func NewTranscription(title, content string, meta Metadata) *Transcription {
	return &Transcription{
		Title:   title,
		Content: content,
		Meta:    meta,
	}
}

// ValidateTranscription validates a Transcription instance
func ValidateTranscription(t *Transcription) error {
	if t == nil {
		return fmt.Errorf("transcription cannot be nil")
	}

	if t.Title == "" {
		return MissingField("title")
	}

	if t.Meta.Title != "" && t.Meta.Title != t.Title {
		return NewDomainError(ErrCodeValidation, "metadata title does not match transcription title")
	}

	return nil
}
