package wardrobe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const wardrobeDoc = `{"coat": {"Rain Shell": {"label": "Yellow Slicker"}}}`

func TestObjectFetcherFetch(t *testing.T) {
	fetcher := newObjectFetcherUnderTest(t, "weatherchap", "wardrobe.json")

	data, err := fetcher.Fetch(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, wardrobeDoc, string(data))
}

func TestObjectFetcherNotFound(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
		key    string
	}{
		{name: "missing key", bucket: "weatherchap", key: "missing.json"},
		{name: "missing bucket", bucket: "absent", key: "wardrobe.json"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newObjectFetcherUnderTest(t, tc.bucket, tc.key).Fetch(context.Background())
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestObjectFetcherAccessDenied(t *testing.T) {
	_, err := newObjectFetcherUnderTest(t, "weatherchap", "private.json").Fetch(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func newObjectFetcherUnderTest(t *testing.T, bucket, key string) *ObjectFetcher {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weatherchap/wardrobe.json":
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Content-Length", strconv.Itoa(len(wardrobeDoc)))
			w.Header().Set("ETag", `"5d41402abc4b2a76b9719d911017c592"`)
			w.Header().Set("Last-Modified", time.Date(2024, 11, 2, 9, 0, 0, 0, time.UTC).Format(http.TimeFormat))
			w.WriteHeader(http.StatusOK)
			if r.Method != http.MethodHead {
				_, _ = w.Write([]byte(wardrobeDoc))
			}
		case "/weatherchap/private.json":
			writeS3Error(w, http.StatusForbidden, "AccessDenied", "Access Denied.")
		case "/absent/wardrobe.json":
			writeS3Error(w, http.StatusNotFound, "NoSuchBucket", "The specified bucket does not exist.")
		default:
			writeS3Error(w, http.StatusNotFound, "NoSuchKey", "The specified key does not exist.")
		}
	}))
	t.Cleanup(server.Close)

	fetcher, err := NewObjectFetcher(server.URL, "minio", "minio123", bucket, "us-east-1", key)
	require.NoError(t, err)
	return fetcher
}

func writeS3Error(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>%s</Code><Message>%s</Message><RequestId>test</RequestId></Error>`, code, message)
}
