package domain

import (
	"fmt"
	"strings"
)

// HashAlgorithm names a supported content digest algorithm.
type HashAlgorithm string

// Supported hash algorithms.
const (
	// HashMD5 is the 128-bit default.
	HashMD5 HashAlgorithm = "md5"

	// HashSHA1 is the 160-bit SHA-1 digest.
	HashSHA1 HashAlgorithm = "sha1"

	// HashSHA256 is the 256-bit SHA-2 digest.
	HashSHA256 HashAlgorithm = "sha256"

	// HashSHA512 is the 512-bit SHA-2 digest.
	HashSHA512 HashAlgorithm = "sha512"

	// HashSHA3_256 is the 256-bit SHA-3 digest.
	HashSHA3_256 HashAlgorithm = "sha3-256"

	// HashSHA3_512 is the 512-bit SHA-3 digest.
	HashSHA3_512 HashAlgorithm = "sha3-512"

	// HashBLAKE2b256 is the 256-bit BLAKE2b digest.
	HashBLAKE2b256 HashAlgorithm = "blake2b-256"
)

// DefaultHashAlgorithm is used when none is configured.
const DefaultHashAlgorithm = HashMD5

// HashAlgorithms returns every supported algorithm in display order.
func HashAlgorithms() []HashAlgorithm {
	return []HashAlgorithm{
		HashMD5,
		HashSHA1,
		HashSHA256,
		HashSHA512,
		HashSHA3_256,
		HashSHA3_512,
		HashBLAKE2b256,
	}
}

// ParseHashAlgorithm resolves a user-supplied name. Case, '-' and '_' are
// ignored, so "MD5", "SHA-256" and "sha3_256" are all accepted.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	want := foldAlgorithmName(name)
	for _, a := range HashAlgorithms() {
		if foldAlgorithmName(string(a)) == want {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// IsValid returns true if the algorithm is supported.
func (a HashAlgorithm) IsValid() bool {
	_, err := ParseHashAlgorithm(string(a))
	return err == nil
}

// DigestBits returns the digest length in bits, or 0 if unknown.
func (a HashAlgorithm) DigestBits() int {
	switch a {
	case HashMD5:
		return 128
	case HashSHA1:
		return 160
	case HashSHA256, HashSHA3_256, HashBLAKE2b256:
		return 256
	case HashSHA512, HashSHA3_512:
		return 512
	default:
		return 0
	}
}

// String returns the canonical name.
func (a HashAlgorithm) String() string {
	return string(a)
}

func foldAlgorithmName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "").Replace(name)
}
