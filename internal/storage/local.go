package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
)

// ExpandLocal returns path itself for a file, or the regular files directly
// inside it, sorted by name, for a directory.
func ExpandLocal(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewDomainErrorWithCause(domain.ErrSourceNotFound.Code, domain.ErrSourceNotFound.Message, fmt.Errorf("%s", path))
		}
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
