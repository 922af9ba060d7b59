// Package hashing provides the content digest implementations.
package hashing

import (
	"crypto/md5"  //nolint:gosec // content fingerprinting, not security
	"crypto/sha1" //nolint:gosec // content fingerprinting, not security
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.HashProvider = (*Registry)(nil)

// Constructor creates a fresh hash state.
type Constructor func() hash.Hash

// Registry maps algorithms to constructors.
type Registry struct {
	constructors map[domain.HashAlgorithm]Constructor
}

// NewRegistry returns a registry with every built-in algorithm.
func NewRegistry() *Registry {
	r := &Registry{constructors: make(map[domain.HashAlgorithm]Constructor)}
	r.Register(domain.HashMD5, md5.New)
	r.Register(domain.HashSHA1, sha1.New)
	r.Register(domain.HashSHA256, sha256.New)
	r.Register(domain.HashSHA512, sha512.New)
	r.Register(domain.HashSHA3_256, sha3.New256)
	r.Register(domain.HashSHA3_512, sha3.New512)
	r.Register(domain.HashBLAKE2b256, newBLAKE2b256)
	return r
}

// Register adds or replaces the constructor for algorithm.
func (r *Registry) Register(algorithm domain.HashAlgorithm, fn Constructor) {
	r.constructors[algorithm] = fn
}

// New returns a fresh hash state for algorithm.
func (r *Registry) New(algorithm domain.HashAlgorithm) (hash.Hash, error) {
	fn, ok := r.constructors[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAlgorithm, algorithm)
	}
	return fn(), nil
}

// Supports reports whether algorithm has a constructor.
func (r *Registry) Supports(algorithm domain.HashAlgorithm) bool {
	_, ok := r.constructors[algorithm]
	return ok
}

func newBLAKE2b256() hash.Hash {
	// Only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	return h
}
