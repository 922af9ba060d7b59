package domain

// Groups partitions file entries by a key while remembering the order in
// which keys and members first arrived. Member order inside a group is the
// order the entries were supplied, which is what makes survivor selection
// deterministic. A Groups value is immutable once built.
type Groups[K comparable] struct {
	keys    []K
	members map[K][]FileEntry
}

// SizeGroups maps byte length to the entries sharing it.
type SizeGroups = Groups[int64]

// HashKey identifies a hash group. The byte length is part of the key so
// files of different lengths can never share a group, whatever the digest.
type HashKey struct {
	Size   int64
	Digest string
}

// HashGroups maps content digest to the entries sharing it.
type HashGroups = Groups[HashKey]

// GroupBy partitions entries by key, preserving arrival order.
func GroupBy[K comparable](entries []FileEntry, key func(FileEntry) K) Groups[K] {
	g := Groups[K]{members: make(map[K][]FileEntry)}
	for _, e := range entries {
		k := key(e)
		if _, ok := g.members[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.members[k] = append(g.members[k], e)
	}
	return g
}

// Keys returns the group keys in first-seen order.
func (g Groups[K]) Keys() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns a copy of the members sharing key.
func (g Groups[K]) Get(key K) []FileEntry {
	m := g.members[key]
	if m == nil {
		return nil
	}
	out := make([]FileEntry, len(m))
	copy(out, m)
	return out
}

// Len returns the number of distinct keys.
func (g Groups[K]) Len() int {
	return len(g.keys)
}

// Total returns the number of entries across all groups.
func (g Groups[K]) Total() int {
	n := 0
	for _, m := range g.members {
		n += len(m)
	}
	return n
}

// Shared returns, in group order, every entry whose group has at least
// two members.
func (g Groups[K]) Shared() []FileEntry {
	var out []FileEntry
	for _, k := range g.keys {
		if m := g.members[k]; len(m) > 1 {
			out = append(out, m...)
		}
	}
	return out
}

// SharedCount returns len(Shared()) without building the slice.
func (g Groups[K]) SharedCount() int {
	n := 0
	for _, m := range g.members {
		if len(m) > 1 {
			n += len(m)
		}
	}
	return n
}

// DuplicateSet is a group of two or more files sharing byte length and
// content digest.
type DuplicateSet struct {
	// Digest is the shared content digest.
	Digest string

	// Size is the shared byte length.
	Size int64

	// Entries are the members in arrival order. The first one survives.
	Entries []FileEntry
}

// Survivor returns the entry that is kept.
func (d DuplicateSet) Survivor() FileEntry {
	return d.Entries[0]
}

// Redundant returns the entries scheduled for deletion.
func (d DuplicateSet) Redundant() []FileEntry {
	return d.Entries[1:]
}

// DuplicateSets returns every digest group with two or more members,
// in first-seen order.
func DuplicateSets(g HashGroups) []DuplicateSet {
	var sets []DuplicateSet
	for _, k := range g.keys {
		m := g.members[k]
		if len(m) < 2 {
			continue
		}
		entries := make([]FileEntry, len(m))
		copy(entries, m)
		sets = append(sets, DuplicateSet{
			Digest:  k.Digest,
			Size:    k.Size,
			Entries: entries,
		})
	}
	return sets
}
