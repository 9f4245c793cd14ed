package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranscription(t *testing.T) {
	meta := Metadata{Title: "Episode 1", Show: "Conduit"}
	tr := NewTranscription("Episode 1", "Sentence one.", meta)

	assert.Equal(t, "Episode 1", tr.Title)
	assert.Equal(t, "Sentence one.", tr.Content)
	assert.Equal(t, meta, tr.Meta)
}

func TestMetadata_JSONKeys(t *testing.T) {
	meta := Metadata{
		Title:       "Episode 1",
		Show:        "Conduit",
		Network:     "Relay",
		NetworkURL:  "https://relay.fm",
		Description: "Getting started",
		URL:         "https://relay.fm/conduit/1",
		PubDate:     "2023-01-05",
	}

	raw, err := json.Marshal(meta)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, map[string]string{
		"title":       "Episode 1",
		"show":        "Conduit",
		"network":     "Relay",
		"network_url": "https://relay.fm",
		"description": "Getting started",
		"url":         "https://relay.fm/conduit/1",
		"pub_date":    "2023-01-05",
	}, decoded)
}

func TestValidateTranscription(t *testing.T) {
	tests := []struct {
		name    string
		tr      *Transcription
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid",
			tr:      NewTranscription("Episode 1", "body", Metadata{Title: "Episode 1"}),
			wantErr: false,
		},
		{
			name:    "nil",
			tr:      nil,
			wantErr: true,
			errMsg:  "nil",
		},
		{
			name:    "missing title",
			tr:      NewTranscription("", "body", Metadata{}),
			wantErr: true,
			errMsg:  "title",
		},
		{
			name:    "mismatched metadata title",
			tr:      NewTranscription("Episode 1", "body", Metadata{Title: "Episode 2"}),
			wantErr: true,
			errMsg:  "metadata title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTranscription(tt.tr)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMissingField_MatchesSentinel(t *testing.T) {
	err := MissingField("pub_date")

	assert.True(t, errors.Is(err, ErrMissingRequiredField))
	assert.False(t, errors.Is(err, ErrNoFrontMatter))
	assert.Contains(t, err.Error(), "pub_date")
}

func TestDomainError_WrappedCauseStillMatches(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := NewDomainErrorWithCause(ErrCodeAlreadyExists, ErrTranscriptionAlreadyExists.Message, cause)

	assert.ErrorIs(t, err, ErrTranscriptionAlreadyExists)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[ALREADY_EXISTS] transcription already exists: duplicate key value violates unique constraint", err.Error())
}
