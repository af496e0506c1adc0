// Package zipfs opens export archives from the local filesystem.
package zipfs

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driven"
)

// Ensure Opener implements the interface.
var _ driven.ArchiveOpener = (*Opener)(nil)

// DefaultMaxEntrySize caps the uncompressed size of a single entry.
const DefaultMaxEntrySize = 512 << 20

// Opener opens zip files with archive/zip.
type Opener struct {
	maxEntrySize int64
}

// NewOpener creates an opener. A non-positive limit uses DefaultMaxEntrySize.
func NewOpener(maxEntrySize int64) *Opener {
	if maxEntrySize <= 0 {
		maxEntrySize = DefaultMaxEntrySize
	}
	return &Opener{maxEntrySize: maxEntrySize}
}

// Open opens the zip at path.
// Unreadable files wrap domain.ErrArchiveRead; files that are not zips
// additionally wrap domain.ErrCorruptArchive.
func (o *Opener) Open(path string) (driven.Archive, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		if isFormatError(err) {
			return nil, fmt.Errorf("%w: %w: %s: %w", domain.ErrArchiveRead, domain.ErrCorruptArchive, path, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrArchiveRead, err)
	}

	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		if _, seen := files[f.Name]; !seen {
			files[f.Name] = f
		}
	}
	return &archive{reader: r, files: files, maxEntrySize: o.maxEntrySize}, nil
}

func isFormatError(err error) bool {
	return errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrAlgorithm) ||
		errors.Is(err, zip.ErrChecksum) || errors.Is(err, io.ErrUnexpectedEOF)
}

type archive struct {
	reader       *zip.ReadCloser
	files        map[string]*zip.File
	maxEntrySize int64
}

func (a *archive) Names() []string {
	names := make([]string, 0, len(a.reader.File))
	for _, f := range a.reader.File {
		names = append(names, f.Name)
	}
	return names
}

func (a *archive) ReadFile(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", name, domain.ErrNotFound)
	}
	if f.UncompressedSize64 > uint64(a.maxEntrySize) {
		return nil, fmt.Errorf("%w: entry %s exceeds %d bytes", domain.ErrArchiveRead, name, a.maxEntrySize)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening entry %s: %w", domain.ErrArchiveRead, name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, a.maxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading entry %s: %w", domain.ErrArchiveRead, name, err)
	}
	if int64(len(data)) > a.maxEntrySize {
		return nil, fmt.Errorf("%w: entry %s exceeds %d bytes", domain.ErrArchiveRead, name, a.maxEntrySize)
	}
	return data, nil
}

func (a *archive) Close() error {
	return a.reader.Close()
}
