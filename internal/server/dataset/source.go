package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Source yields the raw CSV bytes. The file source is the default; the S3
// source covers deployments where the export lands in an object store.
type Source interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads the CSV from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	return f, nil
}

// FromSource fetches and loads the dataset in one step.
func FromSource(ctx context.Context, src Source, encoding string) (*Dataset, error) {
	r, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Load(r, encoding)
}
