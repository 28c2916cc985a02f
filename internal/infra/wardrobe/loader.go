package wardrobe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yanqian/weatherchap/internal/domain/outfit"
)

// maxDocumentSize bounds how much of a wardrobe document is read from any source.
const maxDocumentSize = 1 << 20

// ErrNotFound reports that the source holds no wardrobe document.
var ErrNotFound = errors.New("wardrobe document not found")

// ErrTooLarge reports a document over maxDocumentSize.
var ErrTooLarge = fmt.Errorf("wardrobe document exceeds %d bytes", maxDocumentSize)

// Fetcher returns the raw wardrobe document.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Loader turns a Fetcher into an outfit.WardrobeSource. Any failure degrades to
// an empty wardrobe. With a positive TTL the decoded wardrobe is shared
// read-only between requests until it expires.
type Loader struct {
	fetcher Fetcher
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	refresh   singleflight.Group
	mu        sync.RWMutex
	cached    outfit.Wardrobe
	expiresAt time.Time
}

// NewLoader constructs a loader. A zero TTL reloads the document on every call.
func NewLoader(fetcher Fetcher, ttl time.Duration, logger *slog.Logger) *Loader {
	return &Loader{
		fetcher: fetcher,
		ttl:     ttl,
		logger:  logger.With("component", "wardrobe.loader"),
		now:     time.Now,
	}
}

// Load implements outfit.WardrobeSource.
func (l *Loader) Load(ctx context.Context) outfit.Wardrobe {
	if l.ttl <= 0 {
		return l.load(ctx)
	}

	l.mu.RLock()
	cached, fresh := l.cached, l.cached != nil && l.now().Before(l.expiresAt)
	l.mu.RUnlock()
	if fresh {
		return cached
	}

	// One fetch per expiry; the lock is never held across it. The shared fetch
	// outlives any single caller's cancellation.
	v, _, _ := l.refresh.Do("wardrobe", func() (any, error) {
		w := l.load(context.WithoutCancel(ctx))
		l.mu.Lock()
		l.cached = w
		l.expiresAt = l.now().Add(l.ttl)
		l.mu.Unlock()
		return w, nil
	})
	return v.(outfit.Wardrobe)
}

func (l *Loader) load(ctx context.Context) outfit.Wardrobe {
	data, err := l.fetcher.Fetch(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			l.logger.Debug("no wardrobe configured, using generic labels", "error", err)
		} else {
			l.logger.Warn("wardrobe fetch failed, using generic labels", "error", err)
		}
		return outfit.Wardrobe{}
	}

	wardrobe, warnings, err := outfit.DecodeWardrobe(data)
	if err != nil {
		l.logger.Warn("wardrobe malformed, using generic labels", "error", err)
		return outfit.Wardrobe{}
	}
	for _, w := range warnings {
		l.logger.Warn("wardrobe entry skipped", "reason", w)
	}
	return wardrobe
}

// readDocument reads at most maxDocumentSize bytes and rejects anything longer
// instead of truncating it.
func readDocument(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

var _ outfit.WardrobeSource = (*Loader)(nil)
