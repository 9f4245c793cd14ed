package openai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL points at a local Ollama server's OpenAI-compatible API.
	DefaultBaseURL = "http://localhost:11434/v1"
	// DefaultEmbeddingModel is a 768-dimension sentence embedding model served by Ollama
	DefaultEmbeddingModel = "nomic-embed-text"
	// DefaultEmbeddingDimensions matches the quotes.embedding column
	DefaultEmbeddingDimensions = 768
)

var (
	// ErrEmptyText is returned when text is empty
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrWrongDimensions is returned when embedding has wrong dimensions
	ErrWrongDimensions = errors.New("embedding has wrong dimensions")
	// ErrMissingEmbeddings is returned when the API returns fewer vectors than inputs
	ErrMissingEmbeddings = errors.New("embedding response is missing vectors")
)

// EmbeddingAPI defines the interface for batch embedding generation
type EmbeddingAPI interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Client wraps the OpenAI-compatible embeddings API
type Client struct {
	api        EmbeddingAPI
	dimensions int
}

type OpenAIAdapter struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// newAPIClient builds a go-openai client for any OpenAI-compatible base URL.
// Local servers ignore the token, so an empty key is replaced with a placeholder.
func newAPIClient(apiKey, baseURL string) *openai.Client {
	if apiKey == "" {
		apiKey = "none"
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return openai.NewClientWithConfig(cfg)
}

func NewOpenAIAdapter(apiKey, baseURL string, model openai.EmbeddingModel) *OpenAIAdapter {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &OpenAIAdapter{
		client: newAPIClient(apiKey, baseURL),
		model:  model,
	}
}

// CreateEmbeddings calls the embeddings endpoint once for the whole batch and
// returns the vectors in input order.
func (a *OpenAIAdapter) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: a.model,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrMissingEmbeddings, len(resp.Data), len(texts))
	}

	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	vectors := make([][]float32, len(data))
	for i, d := range data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

type Config struct {
	APIKey              string
	BaseURL             string
	EmbeddingModel      string
	EmbeddingDimensions int
}

// NewClient creates a new embedding client against the default local server.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a new embedding client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	dimensions := cfg.EmbeddingDimensions
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		api:        NewOpenAIAdapter(cfg.APIKey, baseURL, openai.EmbeddingModel(cfg.EmbeddingModel)),
		dimensions: dimensions,
	}
}

// Dimensions returns the vector length every embedding is checked against.
func (c *Client) Dimensions() int {
	return c.dimensions
}

// EmbedDocuments generates embeddings for a batch of texts in a single call.
func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	for _, text := range texts {
		if text == "" {
			return nil, ErrEmptyText
		}
	}

	embeddings, err := c.api.CreateEmbeddings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}

	for _, embedding := range embeddings {
		if err := c.checkDimensions(embedding); err != nil {
			return nil, err
		}
	}

	return embeddings, nil
}

// EmbedQuery generates the embedding for a single search query.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	embeddings, err := c.api.CreateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, ErrMissingEmbeddings
	}

	if err := c.checkDimensions(embeddings[0]); err != nil {
		return nil, err
	}

	return embeddings[0], nil
}

func (c *Client) checkDimensions(embedding []float32) error {
	expected := c.dimensions
	if expected <= 0 {
		expected = DefaultEmbeddingDimensions
	}
	if len(embedding) != expected {
		return fmt.Errorf("%w: got %d, expected %d", ErrWrongDimensions, len(embedding), expected)
	}
	return nil
}
