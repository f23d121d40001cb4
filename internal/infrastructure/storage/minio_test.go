package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// newTestClient points a MinIOClient at an S3 stand-in that knows one object
func newTestClient(t *testing.T, known string) *MinIOClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Path != "/archive/"+known {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("ETag", `"abc"`)
		w.Header().Set("Last-Modified", time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC).Format(http.TimeFormat))
		w.Header().Set("Content-Length", "5")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client, err := minio.New(strings.TrimPrefix(srv.URL, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4("key", "secret", ""),
		Region: "us-east-1",
	})
	require.NoError(t, err)
	return &MinIOClient{client: client, bucket: "archive"}
}

func TestMinIOClient_GetFileURL(t *testing.T) {
	m := newTestClient(t, "meetings/2025-03-14/a/transcript.txt")

	u, err := m.GetFileURL(context.Background(), "meetings/2025-03-14/a/transcript.txt", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, u, "/archive/meetings/2025-03-14/a/transcript.txt")
	assert.Contains(t, u, "X-Amz-Signature=")
}

func TestMinIOClient_GetFileURL_MissingKey(t *testing.T) {
	m := newTestClient(t, "meetings/2025-03-14/a/transcript.txt")

	_, err := m.GetFileURL(context.Background(), "meetings/2025-03-14/missing.txt", time.Hour)
	assert.ErrorIs(t, err, entities.ErrArchiveObjectNotFound)
}
