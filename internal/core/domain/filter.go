package domain

import "strings"

// MatchAllFileTypes is the file-type sentinel that accepts every file.
const MatchAllFileTypes = "*"

// FileTypeFilter decides which regular files are collected during traversal.
// Matching is a case-sensitive suffix test on the file name, so ".jpg"
// does not accept "photo.JPG". An empty filter accepts nothing.
type FileTypeFilter struct {
	suffixes []string
	matchAll bool
}

// NewFileTypeFilter builds a filter from filename suffixes.
// Duplicates are ignored; the MatchAllFileTypes entry makes the filter
// accept every name.
func NewFileTypeFilter(types []string) FileTypeFilter {
	var f FileTypeFilter
	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		if t == MatchAllFileTypes {
			f.matchAll = true
			continue
		}
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		f.suffixes = append(f.suffixes, t)
	}
	return f
}

// Match reports whether a file name is accepted.
func (f FileTypeFilter) Match(name string) bool {
	if f.matchAll {
		return true
	}
	for _, s := range f.suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// MatchesAll reports whether the filter accepts every name.
func (f FileTypeFilter) MatchesAll() bool {
	return f.matchAll
}

// Empty reports whether the filter accepts nothing.
func (f FileTypeFilter) Empty() bool {
	return !f.matchAll && len(f.suffixes) == 0
}

// Suffixes returns the accepted suffixes in insertion order.
func (f FileTypeFilter) Suffixes() []string {
	out := make([]string, len(f.suffixes))
	copy(out, f.suffixes)
	return out
}
