package service

import (
	"context"
	"iter"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSchemaRepo struct {
	mock.Mock
}

func (m *MockSchemaRepo) ExtensionExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockSchemaRepo) CreateExtension(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockSchemaRepo) TableExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockSchemaRepo) CreateTable(ctx context.Context, name string, dimensions int) error {
	args := m.Called(ctx, name, dimensions)
	return args.Error(0)
}

type MockTranscriptionRepo struct {
	mock.Mock
}

func (m *MockTranscriptionRepo) Create(ctx context.Context, t *domain.Transcription) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) CreateBatch(ctx context.Context, quotes []domain.Quote) error {
	args := m.Called(ctx, quotes)
	return args.Error(0)
}

func (m *MockQuoteRepo) SearchNearest(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedQuote, error) {
	args := m.Called(ctx, embedding, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RetrievedQuote), args.Error(1)
}

type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

type MockSplitter struct {
	mock.Mock
}

func (m *MockSplitter) SplitText(text string) ([]string, error) {
	args := m.Called(text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// fakeGenerator replays fragments and records the prompt it was given.
type fakeGenerator struct {
	fragments []string
	err       error
	prompt    string
}

func (g *fakeGenerator) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	g.prompt = prompt
	return func(yield func(string, error) bool) {
		for _, f := range g.fragments {
			if !yield(f, nil) {
				return
			}
		}
		if g.err != nil {
			yield("", g.err)
		}
	}
}
