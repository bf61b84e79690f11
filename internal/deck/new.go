package deck

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/meeting2slides/internal/logger"
	"github.com/nguyentantai21042004/meeting2slides/internal/storage"
)

type implBuilder struct {
	fetcher Fetcher
	logger  logger.Logger
}

// New creates a Builder that loads slide images through fetcher.
func New(fetcher Fetcher, log logger.Logger) Builder {
	return &implBuilder{
		fetcher: fetcher,
		logger:  log,
	}
}

type implFetcher struct {
	bucket storage.Bucket
	client *http.Client
}

// NewFetcher creates a Fetcher that reads bucket URLs from bucket directly and
// everything else over HTTP. bucket may be nil.
func NewFetcher(bucket storage.Bucket) Fetcher {
	return &implFetcher{
		bucket: bucket,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}
