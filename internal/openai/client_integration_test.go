//go:build integration

package openai

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_EmbedQuery_LocalServer(t *testing.T) {
	baseURL := os.Getenv("RAG_EMBEDDING_BASE_URL")
	if baseURL == "" {
		t.Skip("RAG_EMBEDDING_BASE_URL not set, skipping integration test")
	}

	client := NewClientWithConfig(Config{
		APIKey:         os.Getenv("RAG_EMBEDDING_API_KEY"),
		BaseURL:        baseURL,
		EmbeddingModel: os.Getenv("RAG_EMBEDDING_MODEL"),
	})

	embedding, err := client.EmbedQuery(context.Background(), "How do I keep a consistent writing habit?")

	require.NoError(t, err)
	assert.Len(t, embedding, DefaultEmbeddingDimensions)
}

func TestIntegration_Stream_LocalServer(t *testing.T) {
	baseURL := os.Getenv("RAG_LLM_BASE_URL")
	if baseURL == "" {
		t.Skip("RAG_LLM_BASE_URL not set, skipping integration test")
	}

	client := NewChatClient(ChatConfig{
		APIKey:  os.Getenv("RAG_LLM_API_KEY"),
		BaseURL: baseURL,
		Model:   os.Getenv("RAG_LLM_MODEL"),
	})

	var answer string
	for fragment, err := range client.Stream(context.Background(), "Reply with the single word: ready") {
		require.NoError(t, err)
		answer += fragment
	}
	assert.NotEmpty(t, answer)
}
