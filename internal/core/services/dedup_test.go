package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
)

// --- Mock report writer ---

type mockReportWriter struct {
	path   string
	result *domain.Result
	err    error
	calls  int
}

func (m *mockReportWriter) Write(_ context.Context, path string, result *domain.Result) error {
	m.calls++
	m.path = path
	m.result = result
	return m.err
}

func runConfig(roots ...string) domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Roots = roots
	cfg.FileTypes = []string{".jpg"}
	cfg.Workers = 2
	return cfg
}

func TestDedupService_EndToEnd(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{
		"/tmp/r/a.jpg":     "X",
		"/tmp/r/sub/b.jpg": "X",
		"/tmp/r/c.jpg":     "YY",
	})
	svc := NewDedupService(fsys, stdHashProvider{})

	result, err := svc.Run(context.Background(), runConfig("/tmp/r"))

	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesProcessed)
	assert.Equal(t, 1, result.FilesDeleted)
	assert.Equal(t, 3, result.FilesFound)
	assert.Equal(t, 2, result.Candidates)
	assert.Equal(t, int64(1), result.BytesReclaimed)
	assert.NotEqual(t, fsys.exists("/tmp/r/a.jpg"), fsys.exists("/tmp/r/sub/b.jpg"))
	assert.True(t, fsys.exists("/tmp/r/c.jpg"))
	assert.Equal(t, []domain.RootPath{"/tmp/r"}, result.Roots)
	assert.Equal(t, domain.HashMD5, result.Algorithm)
}

func TestDedupService_SameLengthDifferentContent(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{
		"/tmp/r/a.jpg":     "X",
		"/tmp/r/sub/b.jpg": "X",
		"/tmp/r/c.jpg":     "Y",
	})

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), runConfig("/tmp/r"))

	require.NoError(t, err)
	// c.jpg shares a length with the others, so it is hashed but kept.
	assert.Equal(t, 3, result.FilesProcessed)
	assert.Equal(t, 1, result.FilesDeleted)
	assert.True(t, fsys.exists("/tmp/r/c.jpg"))
	require.Len(t, result.DuplicateSets, 1)
	assert.Equal(t, 2, result.HashGroups.Len())
}

func TestDedupService_EmptyRoot(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/tmp/empty/": ""})

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), runConfig("/tmp/empty"))

	require.NoError(t, err)
	assert.Equal(t, 0, result.FilesProcessed)
	assert.Equal(t, 0, result.FilesDeleted)
	assert.Empty(t, result.Outcomes)
}

func TestDedupService_OnlyDistinctLengthsAreNeverHashed(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{
		"/r/a.jpg": "X",
		"/r/b.jpg": "XX",
		"/r/c.jpg": "XXX",
	})

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), runConfig("/r"))

	require.NoError(t, err)
	assert.Equal(t, 0, result.FilesProcessed)
	assert.Equal(t, 0, result.Candidates)
	assert.Empty(t, fsys.opened)
}

func TestDedupService_ConfigurationErrorsTouchNothing(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() domain.Config
		want error
	}{
		{
			name: "unknown algorithm",
			cfg: func() domain.Config {
				cfg := runConfig("/r")
				cfg.HashAlgorithm = "whirlpool"
				return cfg
			},
			want: domain.ErrUnknownAlgorithm,
		},
		{
			name: "algorithm without implementation",
			cfg: func() domain.Config {
				cfg := runConfig("/r")
				cfg.HashAlgorithm = "sha1"
				return cfg
			},
			want: domain.ErrUnknownAlgorithm,
		},
		{
			name: "no roots",
			cfg:  func() domain.Config { return runConfig() },
			want: domain.ErrNoRoots,
		},
		{
			name: "negative workers",
			cfg: func() domain.Config {
				cfg := runConfig("/r")
				cfg.Workers = -1
				return cfg
			},
			want: domain.ErrInvalidWorkers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X", "/r/b.jpg": "X"})

			result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), tt.cfg())

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.Empty(t, fsys.opened)
			assert.Empty(t, fsys.removedPaths())
		})
	}
}

func TestDedupService_AlgorithmNameIsNormalised(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X", "/r/b.jpg": "X"})
	cfg := runConfig("/r")
	cfg.HashAlgorithm = "SHA-256"

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, domain.HashSHA256, result.Algorithm)
	assert.Equal(t, 1, result.FilesDeleted)
}

func TestDedupService_StrictHashFailureAbortsBeforeDeleting(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X", "/r/b.jpg": "X", "/r/c.jpg": "X"})
	fsys.openErr["/r/c.jpg"] = errors.New("permission denied")

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), runConfig("/r"))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrHash)
	assert.Empty(t, fsys.removedPaths())
}

func TestDedupService_LenientHashFailureExcludesFile(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X", "/r/b.jpg": "X", "/r/c.jpg": "X"})
	fsys.openErr["/r/a.jpg"] = errors.New("permission denied")
	cfg := runConfig("/r")
	cfg.Lenient = true

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesProcessed)
	assert.Equal(t, 1, result.FilesDeleted)
	assert.True(t, fsys.exists("/r/a.jpg"))
	assert.True(t, fsys.exists("/r/b.jpg"))
	assert.False(t, fsys.exists("/r/c.jpg"))
}

func TestDedupService_MissingRootIsSkipped(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X", "/r/b.jpg": "X"})

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), runConfig("/gone", "/r"))

	require.NoError(t, err)
	assert.Equal(t, []domain.RootPath{"/r"}, result.Roots)
	assert.Equal(t, 1, result.FilesDeleted)
}

func TestDedupService_UnreadableDirectoryIsSkipped(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{
		"/r/a.jpg":        "X",
		"/r/b.jpg":        "X",
		"/r/locked/c.jpg": "X",
	})
	fsys.readDirErr["/r/locked"] = errors.New("permission denied")

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), runConfig("/r"))

	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesProcessed)
	assert.True(t, fsys.exists("/r/locked/c.jpg"))
}

// Nested roots given descendant first are both searched, so files below
// the descendant are found twice. The survivor must never be deleted.
func TestDedupService_ReverseNestedRoots(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{
		"/r/a.jpg":     "X",
		"/r/sub/b.jpg": "X",
	})

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), runConfig("/r/sub", "/r"))

	require.NoError(t, err)
	assert.Equal(t, []domain.RootPath{"/r/sub", "/r"}, result.Roots)
	assert.Equal(t, 3, result.FilesFound)
	assert.Equal(t, 3, result.FilesProcessed)
	assert.Equal(t, 1, result.FilesDeleted)
	assert.True(t, fsys.exists("/r/sub/b.jpg"))
	assert.False(t, fsys.exists("/r/a.jpg"))
	assert.Equal(t, []string{"/r/a.jpg"}, fsys.removedPaths())
}

func TestDedupService_DryRun(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X", "/r/b.jpg": "X"})
	cfg := runConfig("/r")
	cfg.DryRun = true

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 0, result.FilesDeleted)
	assert.Equal(t, 1, result.FilesPlanned)
	assert.Empty(t, fsys.removedPaths())
}

func TestDedupService_Options(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X", "/r/b.jpg": "X"})
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return start.Add(time.Duration(tick) * time.Second)
	}
	reports := &mockReportWriter{}
	obs := newRecordingObserver()
	cfg := runConfig("/r")
	cfg.ReportPath = "/out/report.json"

	svc := NewDedupService(fsys, stdHashProvider{},
		WithRunIDGenerator(func() string { return "fixed-id" }),
		WithClock(clock),
		WithReportWriter(reports),
		WithObserver(obs),
	)
	result, err := svc.Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, "fixed-id", result.RunID)
	assert.Equal(t, time.Second, result.Duration())
	assert.Equal(t, 1, reports.calls)
	assert.Equal(t, "/out/report.json", reports.path)
	assert.Same(t, result, reports.result)
	assert.Equal(t, []domain.Stage{
		domain.StageNormalise, domain.StageWalk, domain.StageHash, domain.StageDelete,
	}, obs.order)
}

func TestDedupService_ReportFailureIsNotFatal(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X", "/r/b.jpg": "X"})
	reports := &mockReportWriter{err: errors.New("disk full")}
	cfg := runConfig("/r")
	cfg.ReportPath = "/out/report.json"

	result, err := NewDedupService(fsys, stdHashProvider{}, WithReportWriter(reports)).
		Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesDeleted)
	assert.Equal(t, 1, reports.calls)
}

func TestDedupService_NoReportWithoutPath(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X"})
	reports := &mockReportWriter{}

	_, err := NewDedupService(fsys, stdHashProvider{}, WithReportWriter(reports)).
		Run(context.Background(), runConfig("/r"))

	require.NoError(t, err)
	assert.Equal(t, 0, reports.calls)
}

func TestDedupService_DefaultRunID(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/": ""})

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(context.Background(), runConfig("/r"))

	require.NoError(t, err)
	assert.Regexp(t, `^run-\d+$`, result.RunID)
}

func TestDedupService_CancelledBeforeWalk(t *testing.T) {
	fsys := newFakeFS(t, map[string]string{"/r/a.jpg": "X", "/r/b.jpg": "X"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewDedupService(fsys, stdHashProvider{}).Run(ctx, runConfig("/r"))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fsys.removedPaths())
}
