package domain

// RootPath is an absolute, existing directory selected for searching.
// No RootPath accepted in a run is a descendant of another one accepted
// before it.
type RootPath string

// String returns the path.
func (r RootPath) String() string {
	return string(r)
}

// FileEntry is a regular file discovered beneath a root.
type FileEntry struct {
	// Path is the absolute path of the file.
	Path string

	// Size is the byte length of the file.
	Size int64

	// Digest is the hex-encoded content digest.
	// Empty until the file has been hashed.
	Digest string
}

// Hashed reports whether the digest has been computed.
func (f FileEntry) Hashed() bool {
	return f.Digest != ""
}
