package deck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting2slides/internal/storage"
)

func TestPlaceholderURL(t *testing.T) {
	assert.Equal(t, "/placeholder.svg?height=1024&width=1792&query=Q3+Review", PlaceholderURL("Q3 Review"))
	assert.Equal(t, "/placeholder.svg?height=1024&width=1792&query=Slide", PlaceholderURL("  "))
	assert.True(t, IsPlaceholder(PlaceholderURL("x")))
	assert.False(t, IsPlaceholder("http://host/files/presentations/p/slide_1.png"))
}

func TestFetchDataURL(t *testing.T) {
	f := NewFetcher(nil)

	data, err := f.Fetch(context.Background(), DataURL("image/png", []byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	data, err = f.Fetch(context.Background(), "data:text/plain,hi%20there")
	require.NoError(t, err)
	assert.Equal(t, "hi there", string(data))

	_, err = f.Fetch(context.Background(), "data:image/png;base64")
	assert.Error(t, err)
}

func TestFetchFromBucket(t *testing.T) {
	ctx := context.Background()
	bucket, err := storage.New(t.TempDir(), "presentations", "http://unreachable.invalid:1")
	require.NoError(t, err)
	require.NoError(t, bucket.Upload(ctx, "p/slide_1.png", []byte("stored"), "image/png", true))

	f := NewFetcher(bucket)
	data, err := f.Fetch(ctx, bucket.PublicURL("p/slide_1.png"))
	require.NoError(t, err)
	assert.Equal(t, "stored", string(data))
}

func TestFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok.png" {
			_, _ = w.Write([]byte("remote"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(nil)

	data, err := f.Fetch(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, "remote", string(data))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not download image: 404")

	_, err = f.Fetch(context.Background(), "/placeholder.svg")
	assert.Error(t, err)
}
