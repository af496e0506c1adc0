package temporal

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

func at(s string) time.Time {
	t, err := domain.ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return t
}

func dated(dates ...string) []domain.Record {
	records := make([]domain.Record, len(dates))
	for i, d := range dates {
		records[i] = domain.Record{"Date": d, "n": i}
	}
	return records
}

func TestFilter_RestrictsToWindow(t *testing.T) {
	window := domain.TimeWindow{Start: at("2021-01-01 00:00:00"), End: at("2021-12-31 23:59:59")}
	records := dated(
		"2020-12-31 23:59:59",
		"2021-01-01 00:00:00",
		"2021-06-01 12:00:00",
		"2021-12-31 23:59:59",
		"2022-01-01 00:00:00",
	)

	got, err := Collect(Filter(records, "Date", window))

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Record["n"])
	assert.Equal(t, 2, got[1].Record["n"])
	assert.Equal(t, 3, got[2].Record["n"])
	assert.Equal(t, at("2021-06-01 12:00:00"), got[1].Time)
}

func TestFilter_MalformedTimestampStops(t *testing.T) {
	records := dated("2021-02-01 00:00:00", "not a date", "2021-03-01 00:00:00")

	_, err := Collect(Filter(records, "Date", domain.DefaultTimeWindow()))

	assert.ErrorIs(t, err, domain.ErrMalformedTimestamp)
}

func TestFilter_MissingField(t *testing.T) {
	records := []domain.Record{{"Other": "2021-02-01 00:00:00"}}

	_, err := Timestamps(Filter(records, "Date", domain.DefaultTimeWindow()))

	assert.ErrorIs(t, err, domain.ErrMalformedTimestamp)
}

func TestFilter_IsLazy(t *testing.T) {
	records := dated("2021-02-01 00:00:00", "2021-02-02 00:00:00", "garbage")

	var seen int
	for tr, err := range Filter(records, "Date", domain.DefaultTimeWindow()) {
		require.NoError(t, err)
		assert.False(t, tr.Time.IsZero())
		seen++
		if seen == 2 {
			break
		}
	}

	assert.Equal(t, 2, seen, "breaking early never reaches the malformed record")
}

func TestFilter_Empty(t *testing.T) {
	got, err := Timestamps(Filter(nil, "Date", domain.DefaultTimeWindow()))

	require.NoError(t, err)
	assert.Empty(t, got)
}

// Output is an order-preserving subsequence of the input and every
// timestamp lies in the window.
func TestFilter_Property_Subsequence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := at("2020-06-01 00:00:00")

	for run := 0; run < 50; run++ {
		n := rng.Intn(40)
		dates := make([]string, n)
		for i := range dates {
			offset := time.Duration(rng.Int63n(int64(3 * 365 * 24 * time.Hour)))
			dates[i] = base.Add(offset).Format(domain.TimestampLayout)
		}
		records := dated(dates...)

		start := base.Add(time.Duration(rng.Int63n(int64(365 * 24 * time.Hour))))
		window := domain.TimeWindow{Start: start, End: start.Add(time.Duration(rng.Int63n(int64(2 * 365 * 24 * time.Hour))))}

		got, err := Collect(Filter(records, "Date", window))
		require.NoError(t, err)

		last := -1
		for _, tr := range got {
			idx := tr.Record["n"].(int)
			assert.Greater(t, idx, last, fmt.Sprintf("run %d keeps order", run))
			last = idx
			assert.True(t, window.Contains(tr.Time))
		}
	}
}
