package temporal

import (
	"iter"
	"time"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// Filter yields the records whose timestamp field lies inside window,
// preserving input order. The first malformed timestamp is yielded as an
// error and ends the sequence.
func Filter(records []domain.Record, field string, window domain.TimeWindow) iter.Seq2[domain.TimedRecord, error] {
	return func(yield func(domain.TimedRecord, error) bool) {
		for _, r := range records {
			ts, err := r.Time(field)
			if err != nil {
				yield(domain.TimedRecord{}, err)
				return
			}
			if !window.Contains(ts) {
				continue
			}
			if !yield(domain.TimedRecord{Time: ts, Record: r}, nil) {
				return
			}
		}
	}
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq2[domain.TimedRecord, error]) ([]domain.TimedRecord, error) {
	var out []domain.TimedRecord
	for tr, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, nil
}

// Timestamps drains seq and keeps only the timestamps.
func Timestamps(seq iter.Seq2[domain.TimedRecord, error]) ([]time.Time, error) {
	var out []time.Time
	for tr, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, tr.Time)
	}
	return out, nil
}
