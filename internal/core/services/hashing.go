package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dedup-cli/internal/logger"
)

// hashChunkSize bounds the memory used per file while hashing.
const hashChunkSize = 64 * 1024

// HashOptions tunes a ContentHasher.
type HashOptions struct {
	// Workers bounds concurrent hashing. Values below 1 mean 1.
	Workers int

	// Lenient excludes unreadable files instead of failing the batch.
	Lenient bool

	// Observer receives per-file progress. May be nil.
	Observer driven.ProgressObserver
}

// ContentHasher computes content digests of candidate files.
type ContentHasher struct {
	fs        driven.FileSystem
	provider  driven.HashProvider
	algorithm domain.HashAlgorithm
	opts      HashOptions
	buffers   sync.Pool
}

// NewContentHasher creates a hasher for one algorithm.
func NewContentHasher(
	fsys driven.FileSystem,
	provider driven.HashProvider,
	algorithm domain.HashAlgorithm,
	opts HashOptions,
) *ContentHasher {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	opts.Observer = observerOrNop(opts.Observer)
	return &ContentHasher{
		fs:        fsys,
		provider:  provider,
		algorithm: algorithm,
		opts:      opts,
		buffers: sync.Pool{
			New: func() any {
				buf := make([]byte, hashChunkSize)
				return &buf
			},
		},
	}
}

// Hash returns the hex digest of the file at path, reading it in
// fixed-size chunks. Every failure is a *domain.HashError.
func (h *ContentHasher) Hash(path string) (digest string, err error) {
	defer func() {
		if err != nil {
			err = &domain.HashError{Path: path, Err: err}
		}
	}()

	state, err := h.provider.New(h.algorithm)
	if err != nil {
		return "", err
	}

	file, err := h.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer func() { err = errors.Join(err, file.Close()) }()

	bufp := h.buffers.Get().(*[]byte)
	defer h.buffers.Put(bufp)
	buf := *bufp

	for {
		n, rerr := file.Read(buf)
		if n > 0 {
			// hash.Hash.Write never returns an error.
			_, _ = state.Write(buf[:n])
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return "", fmt.Errorf("reading file: %w", rerr)
		}
	}

	return hex.EncodeToString(state.Sum(nil)), nil
}

// HashAll hashes entries concurrently. The returned slice holds the
// successfully hashed entries in input order. In lenient mode unreadable
// files are left out and reported in excluded; otherwise the first
// failure cancels the remaining work and is returned as err.
func (h *ContentHasher) HashAll(
	ctx context.Context,
	entries []domain.FileEntry,
) (hashed []domain.FileEntry, excluded []error, err error) {
	h.opts.Observer.StageStarted(domain.StageHash, len(entries))
	defer h.opts.Observer.StageFinished(domain.StageHash)

	// Each worker writes only its own index; merged after Wait.
	digests := make([]string, len(entries))
	failures := make([]error, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.opts.Workers)
	for i := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			digest, err := h.Hash(entries[i].Path)
			h.opts.Observer.ItemDone(domain.StageHash)
			if err != nil {
				if h.opts.Lenient {
					logger.Warn("%v, excluding file", err)
					failures[i] = err
					return nil
				}
				return err
			}
			logger.Debug("%s %s", digest, entries[i].Path)
			digests[i] = digest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	hashed = make([]domain.FileEntry, 0, len(entries))
	for i, e := range entries {
		if failures[i] != nil {
			excluded = append(excluded, failures[i])
			continue
		}
		e.Digest = digests[i]
		hashed = append(hashed, e)
	}
	return hashed, excluded, nil
}
