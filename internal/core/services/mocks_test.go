package services

import (
	"context"
	"crypto/md5" //nolint:gosec // test digests
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
)

// --- Mock implementations for pipeline testing ---

// fakeFS implements driven.FileSystem over memfs with injectable failures.
// links maps a path to the path EvalSymlinks resolves it to; reverseDirs
// makes ReadDir list entries in descending name order.
type fakeFS struct {
	mem billy.Filesystem

	mu          sync.Mutex
	links       map[string]string
	reverseDirs bool
	readDirErr map[string]error
	openErr    map[string]error
	readErr    map[string]error
	removeErr  map[string]error
	removed    []string
	opened     []string
}

var _ driven.FileSystem = (*fakeFS)(nil)

// newFakeFS creates the given files; a path ending in "/" creates a directory.
func newFakeFS(t *testing.T, files map[string]string) *fakeFS {
	t.Helper()
	f := &fakeFS{
		mem:        memfs.New(),
		links:      make(map[string]string),
		readDirErr: make(map[string]error),
		openErr:    make(map[string]error),
		readErr:    make(map[string]error),
		removeErr:  make(map[string]error),
	}
	for path, content := range files {
		if path[len(path)-1] == '/' {
			require.NoError(t, f.mem.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, util.WriteFile(f.mem, path, []byte(content), 0o644))
	}
	return f
}

func (f *fakeFS) Stat(path string) (os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if target, ok := f.links[path]; ok {
		path = target
	}
	return f.mem.Stat(path)
}

func (f *fakeFS) EvalSymlinks(path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if target, ok := f.links[path]; ok {
		path = target
	}
	if _, err := f.mem.Stat(path); err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}

func (f *fakeFS) ReadDir(path string) ([]os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.readDirErr[path]; err != nil {
		return nil, err
	}
	infos, err := f.mem.ReadDir(path)
	if f.reverseDirs {
		slices.Reverse(infos)
	}
	return infos, err
}

func (f *fakeFS) Open(path string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, path)
	openErr, readErr := f.openErr[path], f.readErr[path]
	if openErr != nil {
		return nil, openErr
	}
	file, err := f.mem.Open(path)
	if err != nil {
		return nil, err
	}
	if readErr != nil {
		return &failingReader{ReadCloser: file, err: readErr}, nil
	}
	return file, nil
}

func (f *fakeFS) Remove(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.removeErr[path]; err != nil {
		return err
	}
	if err := f.mem.Remove(path); err != nil {
		return err
	}
	f.removed = append(f.removed, path)
	return nil
}

func (f *fakeFS) exists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.mem.Stat(path)
	return err == nil
}

func (f *fakeFS) removedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removed...)
}

// failingReader returns one byte, then err.
type failingReader struct {
	io.ReadCloser
	err  error
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, r.err
	}
	r.done = true
	n, err := r.ReadCloser.Read(p[:1])
	if err != nil && err != io.EOF {
		return n, err
	}
	return n, nil
}

// stdHashProvider implements driven.HashProvider with md5 and sha256 only.
type stdHashProvider struct{}

func (stdHashProvider) New(a domain.HashAlgorithm) (hash.Hash, error) {
	switch a {
	case domain.HashMD5:
		return md5.New(), nil //nolint:gosec // test digests
	case domain.HashSHA256:
		return sha256.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAlgorithm, a)
	}
}

func (p stdHashProvider) Supports(a domain.HashAlgorithm) bool {
	_, err := p.New(a)
	return err == nil
}

func md5Hex(content string) string {
	sum := md5.Sum([]byte(content)) //nolint:gosec // test digests
	return hex.EncodeToString(sum[:])
}

// recordingObserver implements driven.ProgressObserver and counts events.
type recordingObserver struct {
	mu       sync.Mutex
	started  map[domain.Stage]int
	items    map[domain.Stage]int
	finished map[domain.Stage]int
	order    []domain.Stage
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		started:  make(map[domain.Stage]int),
		items:    make(map[domain.Stage]int),
		finished: make(map[domain.Stage]int),
	}
}

func (o *recordingObserver) StageStarted(stage domain.Stage, total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started[stage] = total
	o.order = append(o.order, stage)
}

func (o *recordingObserver) ItemDone(stage domain.Stage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items[stage]++
}

func (o *recordingObserver) StageFinished(stage domain.Stage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished[stage]++
}

// entry builds a FileEntry.
func entry(path string, size int64, digest string) domain.FileEntry {
	return domain.FileEntry{Path: filepath.FromSlash(path), Size: size, Digest: digest}
}

func entryPaths(entries []domain.FileEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}
