package services

import (
	"github.com/custodia-labs/dedup-cli/internal/core/domain"
)

// GroupBySize partitions every collected file by byte length.
// Only members of groups with two or more entries (SizeGroups.Shared)
// need hashing: files of different lengths can never be identical.
func GroupBySize(files []domain.FileEntry) domain.SizeGroups {
	return domain.GroupBy(files, func(f domain.FileEntry) int64 {
		return f.Size
	})
}

// GroupByHash partitions hashed files by length and digest. Entries without
// a digest are dropped so an unhashed file can never join a group.
// Equal digests are trusted as equal content; there is no byte-by-byte
// confirmation pass.
func GroupByHash(hashed []domain.FileEntry) domain.HashGroups {
	digested := make([]domain.FileEntry, 0, len(hashed))
	for _, f := range hashed {
		if f.Hashed() {
			digested = append(digested, f)
		}
	}
	return domain.GroupBy(digested, func(f domain.FileEntry) domain.HashKey {
		return domain.HashKey{Size: f.Size, Digest: f.Digest}
	})
}
