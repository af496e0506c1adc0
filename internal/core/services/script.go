package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
	"github.com/custodia-labs/donation-cli/internal/logger"
)

// Ensure Script implements the interface.
var _ driving.DonationScript = (*Script)(nil)

// trackingPayload is donated when a participant enters the script.
const trackingPayload = `[{ "message": "user entered script" }]`

// PlatformFlow describes one platform round of a script.
type PlatformFlow struct {
	Platform   string
	Extensions string
	Extract    ExtractFunc
}

type scriptPhase int

const (
	phaseIdle scriptPhase = iota
	phaseTracking
	phaseFlows
	phaseDone
)

// Script runs the platform flows of one session strictly in order.
// It opens with a tracking donation and closes with the end page.
type Script struct {
	sessionID string
	platforms []PlatformFlow

	phase scriptPhase
	index int
	flow  *DonationFlow
}

// NewScript creates a script for a session.
func NewScript(sessionID string, platforms []PlatformFlow) (*Script, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}
	for _, p := range platforms {
		if p.Platform == "" || p.Extract == nil {
			return nil, fmt.Errorf("%w: platform %q is incomplete", domain.ErrInvalidInput, p.Platform)
		}
	}
	return &Script{sessionID: sessionID, platforms: platforms, index: -1}, nil
}

// PlatformFlows binds every registered platform to the extraction service.
func PlatformFlows(registry driving.ExtractorRegistry, extraction driving.ExtractionService) []PlatformFlow {
	infos := registry.List()
	flows := make([]PlatformFlow, 0, len(infos))
	for _, info := range infos {
		platform := info.Platform
		flows = append(flows, PlatformFlow{
			Platform:   platform,
			Extensions: info.Extensions,
			Extract: func(ctx context.Context, path string) ([]domain.ExtractionResult, error) {
				return extraction.Extract(ctx, platform, path)
			},
		})
	}
	return flows
}

// SessionID returns the session the script runs for.
func (s *Script) SessionID() string {
	return s.sessionID
}

// Current returns the active platform flow, or nil outside the flow phase.
func (s *Script) Current() *DonationFlow {
	if s.phase != phaseFlows {
		return nil
	}
	return s.flow
}

// Start emits the tracking donation.
func (s *Script) Start() domain.Step {
	logger.Info("Starting donation script for session %s", s.sessionID)
	s.phase = phaseTracking
	s.index = -1
	s.flow = nil
	return domain.Step{Command: domain.Donate{
		Key:  domain.DonationKey(s.sessionID, "tracking"),
		JSON: trackingPayload,
	}}
}

// Resume forwards the host's response to the active flow.
func (s *Script) Resume(ctx context.Context, payload domain.Payload) (domain.Step, error) {
	switch s.phase {
	case phaseIdle:
		return domain.Step{}, domain.ErrFlowNotStarted
	case phaseDone:
		return domain.Step{}, domain.ErrFlowTerminated
	case phaseTracking:
		s.phase = phaseFlows
		return s.next()
	}

	// A donate command from the previous resume has been acknowledged.
	if s.flow.State().IsTerminal() {
		return s.next()
	}

	step, err := s.flow.Resume(ctx, payload)
	if err != nil {
		return domain.Step{}, fmt.Errorf("%s flow: %w", s.flow.Platform(), err)
	}
	if !step.Done {
		return step, nil
	}

	logger.Debug("%s flow finished in state %s", s.flow.Platform(), s.flow.State())
	if step.Command != nil {
		return domain.Step{Command: step.Command}, nil
	}
	return s.next()
}

// next starts the following platform flow, or ends the script.
func (s *Script) next() (domain.Step, error) {
	s.index++
	if s.index >= len(s.platforms) {
		s.phase = phaseDone
		s.flow = nil
		logger.Info("Donation script for session %s finished", s.sessionID)
		return domain.Step{Command: domain.RenderEnd{}, Done: true}, nil
	}

	p := s.platforms[s.index]
	flow, err := NewDonationFlow(FlowConfig{
		Platform:   p.Platform,
		Extensions: p.Extensions,
		SessionID:  s.sessionID,
		Extract:    p.Extract,
		Progress:   s.index * 100 / len(s.platforms),
	})
	if err != nil {
		return domain.Step{}, fmt.Errorf("create %s flow: %w", p.Platform, err)
	}
	s.flow = flow
	return flow.Start(), nil
}
