// Package temporal turns timestamped records into windowed, bucketed and
// sessionised views. It is used by the platform extractors.
//
// The three building blocks are:
//
//   - Filter: restricts records to a TimeWindow, lazily and in input order
//   - CountByKey and GroupByKey: aggregate timestamps per hour or day
//   - Sessions: merges events into usage sessions separated by a gap
package temporal
