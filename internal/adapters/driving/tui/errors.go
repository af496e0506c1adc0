package tui

import "errors"

// ErrMissingScript is returned when the donation script is not provided.
var ErrMissingScript = errors.New("tui: donation script is required")

// ErrMissingDonationService is returned when the donation service is not provided.
var ErrMissingDonationService = errors.New("tui: donation service is required")
