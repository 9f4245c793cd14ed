package storage

import (
	"testing"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		ref  string
		want ObjectURI
	}{
		{"s3://transcripts", ObjectURI{Bucket: "transcripts"}},
		{"s3://transcripts/", ObjectURI{Bucket: "transcripts"}},
		{"s3://transcripts/conduit/", ObjectURI{Bucket: "transcripts", Key: "conduit/"}},
		{"s3://transcripts/conduit/episode-1.md", ObjectURI{Bucket: "transcripts", Key: "conduit/episode-1.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseS3URI(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseS3URI_Invalid(t *testing.T) {
	for _, ref := range []string{"s3://", "s3:///key", "/tmp/file.md", "https://bucket/key"} {
		t.Run(ref, func(t *testing.T) {
			_, err := ParseS3URI(ref)
			var de *domain.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, domain.ErrCodeValidation, de.Code)
		})
	}
}

func TestObjectURI_String(t *testing.T) {
	assert.Equal(t, "s3://b/k/x.md", ObjectURI{Bucket: "b", Key: "k/x.md"}.String())
}
