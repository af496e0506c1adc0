// Package services implements the driving ports.
//
// The Script walks a participant through one DonationFlow per registered
// platform. ExtractionService resolves a platform to its extractor and
// classifies archives before they are parsed. DonationService and
// SettingsService sit on top of the driven stores.
package services
