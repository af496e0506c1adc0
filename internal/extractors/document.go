package extractors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driven"
	"github.com/custodia-labs/donation-cli/internal/logger"
)

// Policy decides what a missing document path means.
type Policy int

const (
	// Required paths fail the step with domain.ErrMissingPath.
	Required Policy = iota
	// Optional paths yield an empty list.
	Optional
)

// Path is a location in a nested document.
type Path []string

func (p Path) String() string {
	return strings.Join(p, " > ")
}

// Document is a decoded top-level JSON object.
type Document map[string]any

// DecodeDocument parses a JSON object, keeping numbers as json.Number.
func DecodeDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is not an object", domain.ErrInvalidInput)
	}
	return doc, nil
}

// Get walks path and returns the value found there.
func (d Document) Get(path Path) (any, bool) {
	var cur any = map[string]any(d)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// List returns the array at path.
func (d Document) List(path Path, policy Policy) ([]any, error) {
	v, ok := d.Get(path)
	if !ok {
		if policy == Optional {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingPath, path)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a list", domain.ErrMissingPath, path)
	}
	return list, nil
}

// Records returns the array of objects at path as records.
func (d Document) Records(path Path, policy Policy) ([]domain.Record, error) {
	list, err := d.List(path, policy)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", domain.ErrInvalidInput, path, i)
		}
		records = append(records, domain.Record(m))
	}
	return records, nil
}

// Int converts a decoded scalar to an integer.
// Strings are parsed, so "12" and json.Number("12") are both 12.
func Int(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, n)
		}
		return int64(math.Round(f)), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, n)
		}
		return i, nil
	case float64:
		return int64(math.Round(n)), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %v is not a number", domain.ErrInvalidInput, v)
	}
}

// FirstDocument returns the first .json entry that decodes to an object.
// An archive without one yields a nil document and no error.
// Read failures are returned as is, so they keep their I/O class.
func FirstDocument(a driven.Archive) (Document, string, error) {
	for _, name := range a.Names() {
		if !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}
		data, err := a.ReadFile(name)
		if err != nil {
			return nil, name, err
		}
		doc, err := DecodeDocument(data)
		if err != nil {
			logger.Debug("skipping %s: %v", name, err)
			continue
		}
		return doc, name, nil
	}
	return nil, "", nil
}
