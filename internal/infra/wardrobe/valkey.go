package wardrobe

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"
)

// ValkeyFetcher reads the wardrobe document stored as a string key in Valkey.
type ValkeyFetcher struct {
	client valkey.Client
	key    string
}

// NewValkeyFetcher constructs a fetcher for key.
func NewValkeyFetcher(client valkey.Client, key string) *ValkeyFetcher {
	if key == "" {
		key = "weatherchap:wardrobe"
	}
	return &ValkeyFetcher{client: client, key: key}
}

// Fetch implements Fetcher.
func (f *ValkeyFetcher) Fetch(ctx context.Context) ([]byte, error) {
	payload, err := f.client.Do(ctx, f.client.B().Get().Key(f.key).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, fmt.Errorf("%w: valkey key %s", ErrNotFound, f.key)
		}
		return nil, fmt.Errorf("get wardrobe key: %w", err)
	}
	if len(payload) > maxDocumentSize {
		return nil, fmt.Errorf("wardrobe key %s: %w", f.key, ErrTooLarge)
	}
	return payload, nil
}
