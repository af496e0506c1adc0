// Package tui provides an interactive terminal host for the donation script.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Script sequences the platform flows of one session.
	Script driving.DonationScript

	// Donations persists the Donate commands the script emits.
	Donations driving.DonationService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(script driving.DonationScript, donations driving.DonationService) *Ports {
	return &Ports{Script: script, Donations: donations}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Script == nil {
		return ErrMissingScript
	}
	if p.Donations == nil {
		return ErrMissingDonationService
	}
	return nil
}
