package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

func (b *implBucket) Upload(ctx context.Context, objectPath string, data []byte, contentType string, upsert bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := b.resolve(objectPath)
	if err != nil {
		return err
	}

	if !upsert {
		if _, err := os.Stat(full); err == nil {
			return fmt.Errorf("upload %s: %w", objectPath, ErrObjectExists)
		}
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}

	// Write to a sibling temp file so readers never see a partial object.
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp object: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmpName, full); err != nil {
		return fmt.Errorf("move object into place: %w", err)
	}
	return nil
}

func (b *implBucket) Download(ctx context.Context, objectPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := b.resolve(objectPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", objectPath, err)
	}
	return data, nil
}

func (b *implBucket) RoutePrefix() string {
	return "/files/" + b.name + "/"
}

func (b *implBucket) PublicURL(objectPath string) string {
	clean := strings.TrimLeft(path.Clean("/"+objectPath), "/")
	return b.baseURL + b.RoutePrefix() + clean
}

func (b *implBucket) ObjectPath(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	prefix := b.RoutePrefix()
	if u.IsAbs() {
		base, err := url.Parse(b.baseURL)
		if err != nil || base.Host != u.Host {
			return "", false
		}
	}
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	objectPath := strings.TrimPrefix(u.Path, prefix)
	if objectPath == "" {
		return "", false
	}
	return objectPath, true
}

// Handler serves stored objects. Directory listings and dot files, including
// in-flight uploads, answer 404.
func (b *implBucket) Handler() http.Handler {
	return http.StripPrefix(strings.TrimSuffix(b.RoutePrefix(), "/"), http.FileServer(objectsOnly{http.Dir(b.root)}))
}

type objectsOnly struct {
	fs http.FileSystem
}

func (o objectsOnly) Open(name string) (http.File, error) {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return nil, os.ErrNotExist
		}
	}
	f, err := o.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}

// resolve maps an object path to a file below the bucket root, rejecting traversal.
func (b *implBucket) resolve(objectPath string) (string, error) {
	if objectPath == "" || strings.Contains(objectPath, "\\") {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}
	for _, part := range strings.Split(objectPath, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid object path %q", objectPath)
		}
	}
	clean := path.Clean("/" + objectPath)
	return filepath.Join(b.root, filepath.FromSlash(clean)), nil
}
