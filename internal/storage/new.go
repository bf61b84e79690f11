package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type implBucket struct {
	root    string
	name    string
	baseURL string
}

// New creates a filesystem bucket named name rooted at dir/name.
// Public URLs are built as <baseURL>/files/<name>/<objectPath>.
func New(dir, name, baseURL string) (Bucket, error) {
	if name == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	root := filepath.Join(dir, name)
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create bucket dir: %w", err)
	}
	return &implBucket{
		root:    root,
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}
