package storage

import (
	"fmt"
	"strings"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
)

const s3Scheme = "s3://"

// ObjectURI addresses an object or a prefix in a bucket.
type ObjectURI struct {
	Bucket string
	Key    string
}

func (u ObjectURI) String() string {
	return s3Scheme + u.Bucket + "/" + u.Key
}

// IsS3URI reports whether ref should be read from object storage.
func IsS3URI(ref string) bool {
	return strings.HasPrefix(ref, s3Scheme)
}

// ParseS3URI splits "s3://bucket/some/key" into bucket and key.
// The key may be empty, meaning the whole bucket.
func ParseS3URI(ref string) (ObjectURI, error) {
	if !IsS3URI(ref) {
		return ObjectURI{}, invalidURI(ref)
	}
	bucket, key, _ := strings.Cut(strings.TrimPrefix(ref, s3Scheme), "/")
	if bucket == "" {
		return ObjectURI{}, invalidURI(ref)
	}
	return ObjectURI{Bucket: bucket, Key: key}, nil
}

func invalidURI(ref string) error {
	return domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid s3 uri", fmt.Errorf("%q", ref))
}
