package driven

// ArchiveOpener opens export archives supplied by the user.
type ArchiveOpener interface {
	// Open opens the archive at path.
	// Failures to read the file wrap domain.ErrArchiveRead.
	Open(path string) (Archive, error)
}

// Archive is an opened export archive.
type Archive interface {
	// Names returns every entry name in archive order.
	Names() []string

	// ReadFile returns the contents of the named entry.
	ReadFile(name string) ([]byte, error)

	// Close releases the underlying file.
	Close() error
}
