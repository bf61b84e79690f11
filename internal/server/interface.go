package server

import (
	"context"
	"net/http"
)

// Server exposes the pipeline over HTTP and websockets.
type Server interface {
	Handler() http.Handler
	// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
	ListenAndServe(ctx context.Context) error
	// Close cancels background runs started through the API and waits for them.
	Close()
}
