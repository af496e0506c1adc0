// Package tiktok extracts activity tables from a TikTok JSON export.
package tiktok

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driven"
	"github.com/custodia-labs/donation-cli/internal/extractors"
	"github.com/custodia-labs/donation-cli/internal/logger"
	"github.com/custodia-labs/donation-cli/internal/temporal"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Platform is the label of the TikTok platform.
const Platform = "TikTok"

// dateField holds the timestamp of every TikTok record.
const dateField = "Date"

// Document paths.
var (
	pathFollowers     = extractors.Path{"Activity", "Follower List", "FansList"}
	pathFollowing     = extractors.Path{"Activity", "Following List", "Following"}
	pathLikesReceived = extractors.Path{"Profile", "Profile Information", "ProfileMap", "likesReceived"}
	pathVideos        = extractors.Path{"Video", "Videos", "VideoList"}
	pathLikesGiven    = extractors.Path{"Activity", "Like List", "ItemFavoriteList"}
	pathComments      = extractors.Path{"Comment", "Comments", "CommentsList"}
	pathBrowsing      = extractors.Path{"Activity", "Video Browsing History", "VideoList"}
)

// sessionSources feed the session table. Any of them may be absent.
var sessionSources = []extractors.Path{pathVideos, pathBrowsing, pathComments}

// Options configures extraction.
type Options struct {
	Window     domain.TimeWindow
	SessionGap time.Duration
}

// Extractor builds the TikTok tables.
type Extractor struct {
	opener driven.ArchiveOpener
	opts   Options
}

// New creates a TikTok extractor.
// A zero window uses domain.DefaultTimeWindow.
func New(opener driven.ArchiveOpener, opts Options) *Extractor {
	if opts.Window.Start.IsZero() && opts.Window.End.IsZero() {
		opts.Window = domain.DefaultTimeWindow()
	}
	if opts.SessionGap <= 0 {
		opts.SessionGap = domain.DefaultSessionGap
	}
	return &Extractor{opener: opener, opts: opts}
}

// Platform returns "TikTok".
func (e *Extractor) Platform() string { return Platform }

// Extensions returns the MIME types offered by the file prompt.
func (e *Extractor) Extensions() string { return "application/zip, text/plain" }

// Categories returns the known TikTok export shapes.
func (e *Extractor) Categories() []domain.DDPCategory {
	return []domain.DDPCategory{{
		ID:         "json_en",
		Filetype:   domain.FiletypeJSON,
		Language:   domain.LanguageEN,
		KnownFiles: []string{"user_data.json", "user_data_tiktok.json"},
	}}
}

type step struct {
	id  string
	run func(extractors.Document) (domain.ExtractionResult, error)
}

// Extract reads the first JSON document of the archive and builds the
// summary, posts, active, passive and sessions tables in that order.
// Failed steps are left out and their errors joined.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.ExtractionResult, error) {
	archive, err := e.opener.Open(path)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	doc, name, err := extractors.FirstDocument(archive)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	results := []domain.ExtractionResult{}
	if doc == nil {
		logger.Debug("tiktok: no JSON document in %s", path)
		return results, nil
	}
	logger.Debug("tiktok: extracting from %s", name)

	steps := []step{
		{"tiktok_summary", e.summary},
		{"tiktok_posts", e.posts},
		{"tiktok_active", e.active},
		{"tiktok_passive", e.passive},
		{"tiktok_sessions", e.sessions},
	}

	var errs []error
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		r, err := s.run(doc)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.id, err))
			continue
		}
		results = append(results, r)
	}
	return results, errors.Join(errs...)
}

func (e *Extractor) summary(doc extractors.Document) (domain.ExtractionResult, error) {
	counts := []struct {
		label string
		path  extractors.Path
	}{
		{"Followers", pathFollowers},
		{"Following", pathFollowing},
		{"Likes received", nil},
		{"Videos posted", pathVideos},
		{"Likes given", pathLikesGiven},
		{"Comments posted", pathComments},
	}

	table := domain.NewTable("Description", "Number")
	for _, c := range counts {
		if c.path == nil {
			likes, err := likesReceived(doc)
			if err != nil {
				return domain.ExtractionResult{}, err
			}
			table.Append(c.label, likes)
			continue
		}
		list, err := doc.List(c.path, extractors.Required)
		if err != nil {
			return domain.ExtractionResult{}, err
		}
		table.Append(c.label, len(list))
	}

	return domain.ExtractionResult{
		ID:    "tiktok_summary",
		Title: domain.Translatable{domain.LanguageEN: "Summary information", domain.LanguageNL: "Samenvatting gegevens"},
		Table: table,
	}, nil
}

// likesReceived is reported as a number when it parses, and verbatim otherwise.
func likesReceived(doc extractors.Document) (any, error) {
	v, ok := doc.Get(pathLikesReceived)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingPath, pathLikesReceived)
	}
	if n, err := extractors.Int(v); err == nil {
		return n, nil
	}
	return v, nil
}

func (e *Extractor) posts(doc extractors.Document) (domain.ExtractionResult, error) {
	records, err := doc.Records(pathVideos, extractors.Required)
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	videos, err := temporal.Collect(temporal.Filter(records, dateField, e.opts.Window))
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	groups := temporal.GroupByKey(videos, func(tr domain.TimedRecord) time.Time { return tr.Time }, temporal.HourlyKey)

	table := domain.NewTable("Date", "Hour", "Videos posted", "Likes")
	for _, g := range groups {
		var likes int64
		for _, v := range g.Items {
			n, err := extractors.Int(v.Record["Likes"])
			if err != nil {
				return domain.ExtractionResult{}, fmt.Errorf("likes of video posted %s: %w", v.Time.Format(domain.TimestampLayout), err)
			}
			likes += n
		}
		table.Append(g.Key.Format(time.DateOnly), g.Key.Hour(), len(g.Items), likes)
	}

	return domain.ExtractionResult{
		ID:    "tiktok_posts",
		Title: domain.Translatable{domain.LanguageEN: "Video posts", domain.LanguageNL: "Video posts"},
		Table: table,
	}, nil
}

func (e *Extractor) active(doc extractors.Document) (domain.ExtractionResult, error) {
	table, err := e.hourlyCounts(doc, pathComments, "Comment count")
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	return domain.ExtractionResult{
		ID:    "tiktok_active",
		Title: domain.Translatable{domain.LanguageEN: "Active behaviour", domain.LanguageNL: "Actief gedrag"},
		Table: table,
	}, nil
}

func (e *Extractor) passive(doc extractors.Document) (domain.ExtractionResult, error) {
	table, err := e.hourlyCounts(doc, pathBrowsing, "Viewed Videos")
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	return domain.ExtractionResult{
		ID:    "tiktok_passive",
		Title: domain.Translatable{domain.LanguageEN: "Passive behaviour", domain.LanguageNL: "Passief gedrag"},
		Table: table,
	}, nil
}

// hourlyCounts counts the in-window records at path per hour.
func (e *Extractor) hourlyCounts(doc extractors.Document, path extractors.Path, column string) (domain.Table, error) {
	records, err := doc.Records(path, extractors.Required)
	if err != nil {
		return domain.Table{}, err
	}
	ts, err := temporal.Timestamps(temporal.Filter(records, dateField, e.opts.Window))
	if err != nil {
		return domain.Table{}, err
	}

	table := domain.NewTable("Date", "Hour", column)
	for _, b := range temporal.CountByKey(ts, temporal.HourlyKey) {
		table.Append(b.Key.Format(time.DateOnly), b.Key.Hour(), b.Count)
	}
	return table, nil
}

func (e *Extractor) sessions(doc extractors.Document) (domain.ExtractionResult, error) {
	var records []domain.Record
	for _, p := range sessionSources {
		r, err := doc.Records(p, extractors.Optional)
		if err != nil {
			return domain.ExtractionResult{}, err
		}
		records = append(records, r...)
	}
	ts, err := temporal.Timestamps(temporal.Filter(records, dateField, e.opts.Window))
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	table := domain.NewTable("Start", "Duration (in minutes)")
	for _, s := range temporal.Sessions(ts, e.opts.SessionGap) {
		table.Append(s.Start.Format("2006-01-02 15:04"), math.Round(s.Duration.Minutes()*100)/100)
	}

	return domain.ExtractionResult{
		ID:    "tiktok_sessions",
		Title: domain.Translatable{domain.LanguageEN: "Session information", domain.LanguageNL: "Sessie informatie"},
		Table: table,
	}, nil
}
