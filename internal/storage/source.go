package storage

import (
	"context"
	"errors"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
)

// ErrS3NotConfigured is returned for s3:// arguments when no credentials are set.
var ErrS3NotConfigured = errors.New("s3 source requested but RAG_S3_ACCESS_KEY_ID/RAG_S3_SECRET_ACCESS_KEY are not set")

// ObjectStore is the subset of S3Client the resolver reads with.
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
}

// Resolver turns command-line arguments into documents.
type Resolver struct {
	objects ObjectStore
}

// NewResolver creates a resolver. objects may be nil when S3 is not configured.
func NewResolver(objects ObjectStore) *Resolver {
	return &Resolver{objects: objects}
}

// Documents yields one document per file or object named by refs, reading
// each only when the consumer asks for it. A ref that cannot be expanded or
// read yields an error for that ref and the sequence moves on.
func (r *Resolver) Documents(ctx context.Context, refs []string) iter.Seq2[domain.Document, error] {
	return func(yield func(domain.Document, error) bool) {
		for _, ref := range refs {
			if IsS3URI(ref) {
				if !r.s3Documents(ctx, ref, yield) {
					return
				}
				continue
			}

			files, err := ExpandLocal(ref)
			if err != nil {
				if !yield(domain.Document{Name: ref}, err) {
					return
				}
				continue
			}
			for _, file := range files {
				content, err := os.ReadFile(file)
				if !yield(domain.Document{Name: filepath.Base(file), Content: content}, err) {
					return
				}
			}
		}
	}
}

func (r *Resolver) s3Documents(ctx context.Context, ref string, yield func(domain.Document, error) bool) bool {
	if r.objects == nil {
		return yield(domain.Document{Name: ref}, ErrS3NotConfigured)
	}

	uri, err := ParseS3URI(ref)
	if err != nil {
		return yield(domain.Document{Name: ref}, err)
	}

	keys, err := r.objects.ListKeys(ctx, uri.Bucket, uri.Key)
	if err != nil {
		return yield(domain.Document{Name: ref}, err)
	}
	keys = selectKeys(uri.Key, keys)
	if len(keys) == 0 {
		return yield(domain.Document{Name: ref}, domain.NewDomainErrorWithCause(
			domain.ErrSourceNotFound.Code, domain.ErrSourceNotFound.Message, errors.New(ref)))
	}

	for _, key := range keys {
		content, err := r.objects.GetObject(ctx, uri.Bucket, key)
		if !yield(domain.Document{Name: path.Base(key), Content: content}, err) {
			return false
		}
	}
	return true
}

// selectKeys narrows a listing to the exact key when the prefix names one
// object, and drops directory markers.
func selectKeys(prefix string, keys []string) []string {
	var selected []string
	for _, key := range keys {
		if strings.HasSuffix(key, "/") {
			continue
		}
		if key == prefix {
			return []string{key}
		}
		selected = append(selected, key)
	}
	return selected
}
