package driven

import (
	"context"
	"io"
	"os"
)

// FileSystem is the local filesystem as seen by the dedup pipeline.
// All paths are absolute. Implementations must be safe for concurrent use
// because hashing and deletion fan out across workers.
type FileSystem interface {
	// Stat returns file information for path, following symbolic links.
	Stat(path string) (os.FileInfo, error)

	// EvalSymlinks returns path with every symbolic link in it resolved.
	// A missing path yields an error satisfying errors.Is(err, fs.ErrNotExist).
	EvalSymlinks(path string) (string, error)

	// ReadDir lists the entries of a directory without following links.
	ReadDir(path string) ([]os.FileInfo, error)

	// Open opens a file for reading.
	Open(path string) (io.ReadCloser, error)

	// Remove deletes a file. A missing file yields an error satisfying
	// errors.Is(err, fs.ErrNotExist). Implementations may block, for
	// example to pace deletions, until ctx is done.
	Remove(ctx context.Context, path string) error
}
