package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
)

func walk(t *testing.T, fsys *fakeFS, types []string, roots ...domain.RootPath) ([]domain.FileEntry, []error) {
	t.Helper()
	return NewWalker(fsys, domain.NewFileTypeFilter(types), nil).Walk(context.Background(), roots)
}

func TestWalker_CollectsMatchingFilesDepthFirst(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{
		"/r/b.jpg":          "XX",
		"/r/a.jpg":          "X",
		"/r/sub/c.gif":      "XYZ",
		"/r/sub/deep/d.jpg": "",
		"/r/x.txt":          "X",
		"/r/z.JPG":          "X",
		"/r/empty/":         "",
	})

	files, skipped := walk(t, fsys, []string{".jpg", ".gif"}, "/r")

	assert.Empty(t, skipped)
	assert.Equal(t, []string{"/r/a.jpg", "/r/b.jpg", "/r/sub/c.gif", "/r/sub/deep/d.jpg"}, entryPaths(files))
	assert.Equal(t, int64(1), files[0].Size)
	assert.Equal(t, int64(2), files[1].Size)
	assert.Equal(t, int64(0), files[3].Size)
	for _, f := range files {
		assert.False(t, f.Hashed())
	}
}

func TestWalker_SortsEntriesByName(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{
		"/r/a.jpg":     "X",
		"/r/b.jpg":     "X",
		"/r/sub/c.jpg": "X",
		"/r/sub/d.jpg": "X",
	})
	fsys.reverseDirs = true

	files, _ := walk(t, fsys, []string{".jpg"}, "/r")

	assert.Equal(t, []string{"/r/a.jpg", "/r/b.jpg", "/r/sub/c.jpg", "/r/sub/d.jpg"}, entryPaths(files))
}

func TestWalker_DirectoriesAreDescendedRegardlessOfFilter(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{
		"/r/folder.jpg/inner.jpg": "X",
	})

	files, _ := walk(t, fsys, []string{".jpg"}, "/r")

	assert.Equal(t, []string{"/r/folder.jpg/inner.jpg"}, entryPaths(files))
}

func TestWalker_RootsInOrder(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{
		"/one/a.jpg": "X",
		"/two/a.jpg": "X",
	})

	files, _ := walk(t, fsys, []string{".jpg"}, "/two", "/one")

	assert.Equal(t, []string{"/two/a.jpg", "/one/a.jpg"}, entryPaths(files))
}

func TestWalker_UnreadableDirectoryIsSkipped(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{
		"/r/a.jpg":        "X",
		"/r/locked/b.jpg": "X",
		"/r/open/c.jpg":   "X",
	})
	fsys.readDirErr["/r/locked"] = errors.New("permission denied")

	files, skipped := walk(t, fsys, []string{".jpg"}, "/r")

	assert.Equal(t, []string{"/r/a.jpg", "/r/open/c.jpg"}, entryPaths(files))
	require.Len(t, skipped, 1)
	assert.ErrorIs(t, skipped[0], domain.ErrTraversal)
	var terr *domain.TraversalError
	require.ErrorAs(t, skipped[0], &terr)
	assert.Equal(t, "/r/locked", terr.Path)
}

func TestWalker_Filters(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{
		"/r/a.jpg": "X",
		"/r/b.png": "X",
		"/r/c":     "X",
	})

	t.Run("empty filter matches nothing", func(t *testing.T) {
		files, _ := walk(t, fsys, nil, "/r")
		assert.Empty(t, files)
	})

	t.Run("match all", func(t *testing.T) {
		files, _ := walk(t, fsys, []string{domain.MatchAllFileTypes}, "/r")
		assert.Equal(t, []string{"/r/a.jpg", "/r/b.png", "/r/c"}, entryPaths(files))
	})
}

func TestWalker_SymlinksAreNotCollected(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X"})
	require.NoError(t, fsys.mem.Symlink("/r/a.jpg", "/r/link.jpg"))

	files, _ := walk(t, fsys, []string{".jpg"}, "/r")

	assert.Equal(t, []string{"/r/a.jpg"}, entryPaths(files))
}

func TestWalker_StopsWhenCancelled(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, skipped := NewWalker(fsys, domain.NewFileTypeFilter([]string{".jpg"}), nil).
		Walk(ctx, []domain.RootPath{"/r"})

	assert.Empty(t, files)
	assert.Empty(t, skipped)
}

func TestWalker_ReportsProgress(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X", "/r/b.jpg": "Y", "/r/c.txt": "Z"})
	obs := newRecordingObserver()

	_, _ = NewWalker(fsys, domain.NewFileTypeFilter([]string{".jpg"}), obs).
		Walk(context.Background(), []domain.RootPath{"/r"})

	assert.Equal(t, -1, obs.started[domain.StageWalk])
	assert.Equal(t, 2, obs.items[domain.StageWalk])
	assert.Equal(t, 1, obs.finished[domain.StageWalk])
}
