// Package domain defines the core types of the duplicate finder.
//
// This package is part of the hexagonal architecture's innermost layer:
//
//   - FileEntry: a collected file with its length and, once hashed, digest
//   - Groups: files partitioned by length or by (length, digest)
//   - DuplicateSet: files with identical content; the first one survives
//   - DeletionOutcome, Summary, Result: what a run did
//   - Config, FileTypeFilter, HashAlgorithm: what a run should do
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
