package wardrobe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileFetcher reads the wardrobe from a JSON file on local disk.
type FileFetcher struct {
	path string
}

// NewFileFetcher builds a fetcher for path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Fetch implements Fetcher.
func (f *FileFetcher) Fetch(_ context.Context) ([]byte, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, f.path)
		}
		return nil, fmt.Errorf("open wardrobe file: %w", err)
	}
	defer file.Close()

	data, err := readDocument(file)
	if err != nil {
		return nil, fmt.Errorf("read wardrobe file %s: %w", f.path, err)
	}
	return data, nil
}
