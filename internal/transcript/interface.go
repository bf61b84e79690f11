package transcript

import "context"

// Reader loads meeting transcript text from a file on disk.
type Reader interface {
	Read(ctx context.Context, path string) (string, error)
}
