package service

import "context"

type testTxRepos struct {
	schema         SchemaRepositoryInterface
	transcriptions TranscriptionRepositoryInterface
	quotes         QuoteRepositoryInterface
}

func (t *testTxRepos) Schema() SchemaRepositoryInterface {
	return t.schema
}

func (t *testTxRepos) Transcriptions() TranscriptionRepositoryInterface {
	return t.transcriptions
}

func (t *testTxRepos) Quotes() QuoteRepositoryInterface {
	return t.quotes
}

type testTxRunner struct {
	repos  TxRepositories
	called int
	// rolledBack is set when fn returned an error.
	rolledBack bool
}

func (t *testTxRunner) WithTx(ctx context.Context, fn func(repos TxRepositories) error) error {
	t.called++
	if err := fn(t.repos); err != nil {
		t.rolledBack = true
		return err
	}
	return nil
}
