package temporal

import (
	"slices"
	"time"
)

// KeyFunc maps a timestamp to its bucket. It must be order preserving.
type KeyFunc func(time.Time) time.Time

// HourlyKey floors t to the start of its hour.
func HourlyKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// DailyKey floors t to midnight.
func DailyKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Bucket is the number of timestamps sharing a key.
type Bucket struct {
	Key   time.Time
	Count int
}

// Group is the items sharing a key, in input order.
type Group[T any] struct {
	Key   time.Time
	Items []T
}

// GroupByKey groups items by the bucket of their timestamp.
// Groups are sorted ascending by key.
func GroupByKey[T any](items []T, timestamp func(T) time.Time, key KeyFunc) []Group[T] {
	index := make(map[time.Time]int)
	var groups []Group[T]
	for _, item := range items {
		k := key(timestamp(item))
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	slices.SortFunc(groups, func(a, b Group[T]) int {
		return a.Key.Compare(b.Key)
	})
	return groups
}

// CountByKey counts timestamps per bucket, sorted ascending by key.
// Empty input returns an empty slice.
func CountByKey(timestamps []time.Time, key KeyFunc) []Bucket {
	groups := GroupByKey(timestamps, func(t time.Time) time.Time { return t }, key)

	buckets := make([]Bucket, len(groups))
	for i, g := range groups {
		buckets[i] = Bucket{Key: g.Key, Count: len(g.Items)}
	}
	return buckets
}
