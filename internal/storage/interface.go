package storage

import (
	"context"
	"errors"
	"net/http"
)

// ErrObjectExists is returned by Upload when upsert is false and the object is present.
var ErrObjectExists = errors.New("object already exists")

// Bucket stores generated slide images and decks under public URLs.
type Bucket interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string, upsert bool) error
	Download(ctx context.Context, objectPath string) ([]byte, error)
	PublicURL(objectPath string) string
	// ObjectPath maps a URL produced by PublicURL back to its object path.
	ObjectPath(url string) (string, bool)
	// Handler serves objects below the prefix returned by RoutePrefix.
	Handler() http.Handler
	RoutePrefix() string
}
