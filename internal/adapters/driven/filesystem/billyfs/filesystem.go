// Package billyfs adapts a go-billy filesystem to driven.FileSystem.
package billyfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
)

// Ensure FileSystem implements the interface.
var _ driven.FileSystem = (*FileSystem)(nil)

// maxLinkHops bounds symlink resolution, matching the usual kernel limit.
const maxLinkHops = 255

// FileSystem serves absolute paths from a billy.Filesystem.
//
// Calls into the wrapped filesystem are serialised with mu so that
// implementations which are not goroutine-safe, such as memfs, can be
// shared by the hashing and deletion workers. Reads from an opened file
// happen outside the lock.
type FileSystem struct {
	mu      sync.RWMutex
	fs      billy.Filesystem
	resolve func(string) (string, error)
}

// New wraps fs. Tests pass memfs.New().
func New(fs billy.Filesystem) *FileSystem {
	f := &FileSystem{fs: fs}
	f.resolve = f.evalSymlinks
	return f
}

// NewOS returns the host filesystem rooted at "/".
func NewOS() *FileSystem {
	f := New(osfs.New("/"))
	f.resolve = filepath.EvalSymlinks
	return f
}

// Stat returns file information for path.
func (f *FileSystem) Stat(path string) (os.FileInfo, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fs.Stat(path)
}

// EvalSymlinks returns path with every symbolic link resolved.
func (f *FileSystem) EvalSymlinks(path string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.resolve(path)
}

// ReadDir lists the entries of a directory.
func (f *FileSystem) ReadDir(path string) ([]os.FileInfo, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fs.ReadDir(path)
}

// Open opens a file for reading.
func (f *FileSystem) Open(path string) (io.ReadCloser, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fs.Open(path)
}

// Remove deletes a file.
func (f *FileSystem) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fs.Remove(path)
}

// evalSymlinks resolves links one component at a time through
// billy.Symlink. Filesystems without link support only clean the path.
// The caller holds mu.
func (f *FileSystem) evalSymlinks(path string) (string, error) {
	links, ok := f.fs.(billy.Symlink)
	if !ok {
		if _, err := f.fs.Stat(path); err != nil {
			return "", err
		}
		return filepath.Clean(path), nil
	}

	sep := string(filepath.Separator)
	resolved := sep
	pending := splitPath(path)
	for hops := 0; len(pending) > 0; {
		name := pending[0]
		pending = pending[1:]
		if name == ".." {
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, name)
		info, err := links.Lstat(next)
		if err != nil {
			return "", err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			resolved = next
			continue
		}

		if hops++; hops > maxLinkHops {
			return "", fmt.Errorf("resolve %s: too many links", path)
		}
		target, err := links.Readlink(next)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(resolved, target)
		}
		pending = append(splitPath(target), pending...)
		resolved = sep
	}
	return resolved, nil
}

// splitPath returns the non-empty components of a cleaned path.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(filepath.Clean(path), string(filepath.Separator)) {
		if p != "" && p != "." {
			parts = append(parts, p)
		}
	}
	return parts
}
