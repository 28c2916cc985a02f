package wardrobe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherchap/internal/domain/outfit"
)

func TestLoaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wardrobe.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"coat": {"Rain Shell": {"label": "Yellow Slicker", "image": "slicker.png"}, "Pack Shell": 3}}`), 0o600))

	got := NewLoader(NewFileFetcher(path), 0, newTestLogger()).Load(context.Background())
	require.Equal(t, outfit.Wardrobe{
		outfit.SlotCoat: {"Rain Shell": {Label: "Yellow Slicker", Image: "slicker.png"}},
	}, got)
}

func TestLoaderDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"coat": `), 0o600))

	tests := []struct {
		name    string
		fetcher Fetcher
	}{
		{name: "missing file", fetcher: NewFileFetcher(filepath.Join(dir, "absent.json"))},
		{name: "malformed json", fetcher: NewFileFetcher(malformed)},
		{name: "directory", fetcher: NewFileFetcher(dir)},
		{name: "fetch error", fetcher: &stubFetcher{err: errors.New("connection refused")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewLoader(tc.fetcher, 0, newTestLogger()).Load(context.Background())
			require.NotNil(t, got)
			require.Empty(t, got)
		})
	}
}

func TestFileFetcherNotFound(t *testing.T) {
	_, err := NewFileFetcher(filepath.Join(t.TempDir(), "nope.json")).Fetch(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoaderReloadsWithoutTTL(t *testing.T) {
	fetcher := &stubFetcher{data: []byte(`{"hat": {"Beanie": {"label": "Toque"}}}`)}
	loader := NewLoader(fetcher, 0, newTestLogger())

	loader.Load(context.Background())
	loader.Load(context.Background())
	require.Equal(t, 2, fetcher.calls)
}

func TestLoaderCachesWithTTL(t *testing.T) {
	fetcher := &stubFetcher{data: []byte(`{"hat": {"Beanie": {"label": "Toque"}}}`)}
	loader := NewLoader(fetcher, time.Minute, newTestLogger())
	now := time.Date(2024, 11, 2, 9, 0, 0, 0, time.UTC)
	loader.now = func() time.Time { return now }

	first := loader.Load(context.Background())
	fetcher.data = []byte(`{"hat": {"Beanie": {"label": "Bobble"}}}`)
	second := loader.Load(context.Background())
	require.Equal(t, 1, fetcher.calls)
	require.Equal(t, first, second)
	require.Equal(t, "Toque", second[outfit.SlotHat]["Beanie"].Label)

	now = now.Add(2 * time.Minute)
	third := loader.Load(context.Background())
	require.Equal(t, 2, fetcher.calls)
	require.Equal(t, "Bobble", third[outfit.SlotHat]["Beanie"].Label)
}

func TestLoaderSharesOneRefresh(t *testing.T) {
	fetcher := &blockingFetcher{release: make(chan struct{}), started: make(chan struct{}), data: []byte(`{"shoes": {"Vans": {"label": "Old Skools"}}}`)}
	loader := NewLoader(fetcher, time.Minute, newTestLogger())

	var wg sync.WaitGroup
	results := make([]outfit.Wardrobe, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = loader.Load(context.Background())
		}()
	}
	<-fetcher.started
	close(fetcher.release)
	wg.Wait()

	require.EqualValues(t, 1, fetcher.calls.Load())
	for _, got := range results {
		require.Equal(t, "Old Skools", got[outfit.SlotShoes]["Vans"].Label)
	}
}

func TestLoaderRefreshIgnoresCallerCancellation(t *testing.T) {
	fetcher := &stubFetcher{data: []byte(`{"hat": {"Beanie": {"label": "Toque"}}}`), failOnCancel: true}
	loader := NewLoader(fetcher, time.Minute, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := loader.Load(ctx)
	require.Equal(t, "Toque", got[outfit.SlotHat]["Beanie"].Label)
}

func TestFileFetcherRejectsOversizedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.json")
	doc := `{"hat": {"Beanie": {"label": "` + strings.Repeat("x", maxDocumentSize) + `"}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, err := NewFileFetcher(path).Fetch(context.Background())
	require.ErrorIs(t, err, ErrTooLarge)

	exact := filepath.Join(t.TempDir(), "exact.json")
	require.NoError(t, os.WriteFile(exact, []byte(strings.Repeat(" ", maxDocumentSize-2)+"{}"), 0o600))
	data, err := NewFileFetcher(exact).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, data, maxDocumentSize)
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "acct.r2.cloudflarestorage.com", sanitizeEndpoint("https://acct.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint(" http://localhost:9000 "))
	require.Equal(t, "", sanitizeEndpoint(""))
}

type stubFetcher struct {
	data         []byte
	err          error
	failOnCancel bool
	calls        int
}

func (s *stubFetcher) Fetch(ctx context.Context) ([]byte, error) {
	s.calls++
	if s.failOnCancel && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

type blockingFetcher struct {
	data    []byte
	release chan struct{}
	once    sync.Once
	started chan struct{}
	calls   atomic.Int32
}

func (b *blockingFetcher) Fetch(ctx context.Context) ([]byte, error) {
	b.calls.Add(1)
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.data, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
