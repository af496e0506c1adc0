// Package facebook extracts Messenger conversations from a Facebook JSON export.
package facebook

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driven"
	"github.com/custodia-labs/donation-cli/internal/extractors"
	"github.com/custodia-labs/donation-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Platform is the label of the Facebook platform.
const Platform = "Facebook"

// conversationFile is the first message file of every conversation folder.
const conversationFile = "message_1.json"

// DefaultMaxRows is the largest table a conversation produces before it is split.
const DefaultMaxRows = 5000

// Extractor builds one table per Messenger conversation.
type Extractor struct {
	opener  driven.ArchiveOpener
	maxRows int
}

// New creates a Facebook extractor. A non-positive maxRows uses DefaultMaxRows.
func New(opener driven.ArchiveOpener, maxRows int) *Extractor {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &Extractor{opener: opener, maxRows: maxRows}
}

// Platform returns "Facebook".
func (e *Extractor) Platform() string { return Platform }

// Extensions returns the MIME types offered by the file prompt.
func (e *Extractor) Extensions() string { return "application/zip" }

// Categories returns the known Facebook export shapes.
func (e *Extractor) Categories() []domain.DDPCategory {
	return []domain.DDPCategory{{
		ID:         "json_en",
		Filetype:   domain.FiletypeJSON,
		Language:   domain.LanguageEN,
		KnownFiles: slices.Clone(knownFiles),
	}}
}

// Extract builds a table for every conversation in the archive, in archive order.
// A conversation that cannot be parsed is skipped and its error joined.
func (e *Extractor) Extract(ctx context.Context, file string) ([]domain.ExtractionResult, error) {
	archive, err := e.opener.Open(file)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	results := []domain.ExtractionResult{}
	var errs []error
	n := 0
	for _, name := range archive.Names() {
		if path.Base(name) != conversationFile {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		n++

		data, err := archive.ReadFile(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		tables, err := e.conversation(fmt.Sprintf("facebook_conversation_%d", n), data)
		if err != nil {
			logger.Warn("facebook: skipping %s: %v", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		results = append(results, tables...)
	}
	return results, errors.Join(errs...)
}

type message struct {
	sender  any
	content any
	at      time.Time
}

func (e *Extractor) conversation(id string, data []byte) ([]domain.ExtractionResult, error) {
	doc, err := extractors.DecodeDocument(data)
	if err != nil {
		return nil, err
	}

	participants, err := doc.Records(extractors.Path{"participants"}, extractors.Required)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		names = append(names, FixEncoding(p.String("name")))
	}

	raw, err := doc.Records(extractors.Path{"messages"}, extractors.Required)
	if err != nil {
		return nil, err
	}
	messages := make([]message, 0, len(raw))
	for i, m := range raw {
		ms, err := extractors.Int(m["timestamp_ms"])
		if err != nil {
			return nil, fmt.Errorf("message %d timestamp: %w", i, err)
		}
		messages = append(messages, message{
			sender:  optionalText(m, "sender_name"),
			content: optionalText(m, "content"),
			at:      time.UnixMilli(ms).UTC(),
		})
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].at.After(messages[j].at)
	})

	table := domain.NewTable("Sender", "Content", "Time")
	for _, m := range messages {
		table.Append(m.sender, m.content, m.at.Format(time.RFC3339))
	}

	joined := strings.Join(names, ", ")
	title := domain.Translatable{
		domain.LanguageEN: "Conversation between: " + joined,
		domain.LanguageNL: "Gesprek tussen: " + joined,
	}
	return e.split(id, title, table), nil
}

// split cuts tables longer than maxRows into numbered chunks.
func (e *Extractor) split(id string, title domain.Translatable, table domain.Table) []domain.ExtractionResult {
	if table.Len() <= e.maxRows {
		return []domain.ExtractionResult{{ID: id, Title: title, Table: table}}
	}

	parts := (table.Len() + e.maxRows - 1) / e.maxRows
	out := make([]domain.ExtractionResult, 0, parts)
	for i := 0; i < parts; i++ {
		lo, hi := i*e.maxRows, min((i+1)*e.maxRows, table.Len())
		chunk := domain.NewTable(table.Columns...)
		chunk.Rows = table.Rows[lo:hi]

		partTitle := make(domain.Translatable, len(title))
		for lang, text := range title {
			partTitle[lang] = fmt.Sprintf("%s (%d/%d)", text, i+1, parts)
		}
		out = append(out, domain.ExtractionResult{
			ID:    fmt.Sprintf("%s_%d", id, i+1),
			Title: partTitle,
			Table: chunk,
		})
	}
	return out
}

// optionalText returns the repaired string at key, or nil when it is absent.
func optionalText(r domain.Record, key string) any {
	s, ok := r[key].(string)
	if !ok {
		return nil
	}
	return FixEncoding(s)
}

// FixEncoding repairs UTF-8 text that was exported as Latin-1 escapes,
// such as "Ã©" for "é". Text that does not round-trip is returned unchanged.
func FixEncoding(s string) string {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(latin1) {
		return s
	}
	return latin1
}
