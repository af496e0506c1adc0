// Package testutil builds export archive fixtures for tests.
package testutil

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Entry is one file of a fixture archive.
type Entry struct {
	Name string
	Data []byte
}

// JSONEntry encodes v as the entry's contents.
func JSONEntry(t testing.TB, name string, v any) Entry {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("encoding %s: %v", name, err)
	}
	return Entry{Name: name, Data: data}
}

// TextEntry stores s as the entry's contents.
func TextEntry(name, s string) Entry {
	return Entry{Name: name, Data: []byte(s)}
}

// WriteZip writes the entries, in order, to a zip in a temporary directory
// and returns its path.
func WriteZip(t testing.TB, entries ...Entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.Create(e.Name)
		if err != nil {
			t.Fatalf("adding %s: %v", e.Name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			t.Fatalf("writing %s: %v", e.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing fixture: %v", err)
	}
	return path
}

// WriteFile writes raw bytes to a temporary file and returns its path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
