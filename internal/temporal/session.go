package temporal

import (
	"slices"
	"time"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// Sessions sorts timestamps and merges them into usage sessions.
// A new session starts whenever the gap to the previous timestamp exceeds
// gap; a gap of exactly gap stays in the same session. A non-positive gap
// uses domain.DefaultSessionGap.
func Sessions(timestamps []time.Time, gap time.Duration) []domain.Session {
	if len(timestamps) == 0 {
		return []domain.Session{}
	}
	if gap <= 0 {
		gap = domain.DefaultSessionGap
	}

	sorted := slices.Clone(timestamps)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	var sessions []domain.Session
	start, end := sorted[0], sorted[0]
	for _, cur := range sorted[1:] {
		if cur.Sub(end) > gap {
			sessions = append(sessions, newSession(start, end))
			start = cur
		}
		end = cur
	}
	return append(sessions, newSession(start, end))
}

func newSession(start, end time.Time) domain.Session {
	return domain.Session{Start: start, End: end, Duration: end.Sub(start)}
}
