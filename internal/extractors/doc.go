// Package extractors holds the helpers shared by the platform extractors.
//
// Each platform lives in its own subpackage and implements driven.Extractor:
//
//   - tiktok: summary counts, posting and viewing activity, usage sessions
//   - facebook: one table per Messenger conversation
//
// Documents are decoded with json.Number so counts survive unchanged.
// Every path into a document carries an explicit Policy: a Required path
// that is missing fails its extraction step, an Optional one degrades to
// an empty list.
package extractors
