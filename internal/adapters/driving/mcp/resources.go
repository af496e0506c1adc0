package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for donation resources.
	uriScheme = "donate://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "platforms",
		Name:        "platforms",
		Description: "Platforms whose data download packages can be extracted",
		MIMEType:    "application/json",
	}, s.handlePlatformsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{sessionId}/donations",
		Name:        "session-donations",
		Description: "Donations recorded during one session",
		MIMEType:    "application/json",
	}, s.handleSessionDonationsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "donations/{donationId}",
		Name:        "donation-payload",
		Description: "Payload of a stored donation",
		MIMEType:    "application/json",
	}, s.handleDonationResource)
}

func (s *Server) handlePlatformsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type platformInfo struct {
		Platform   string   `json:"platform"`
		Extensions string   `json:"extensions"`
		Categories []string `json:"categories"`
	}

	infos := s.ports.Registry.List()
	out := make([]platformInfo, len(infos))
	for i, info := range infos {
		out[i] = platformInfo{Platform: info.Platform, Extensions: info.Extensions, Categories: info.Categories}
	}

	return jsonResource(req.Params.URI, out)
}

func (s *Server) handleSessionDonationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Donations == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	sessionID := extractSessionID(req.Params.URI)
	if sessionID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	donations, err := s.ports.Donations.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing donations: %w", err)
	}

	// Payloads are served separately per donation.
	type donationInfo struct {
		ID        string `json:"id"`
		Key       string `json:"key"`
		Platform  string `json:"platform"`
		CreatedAt string `json:"created_at"`
	}

	infos := make([]donationInfo, len(donations))
	for i, d := range donations {
		infos[i] = donationInfo{
			ID:        d.ID,
			Key:       d.Key,
			Platform:  d.Platform,
			CreatedAt: d.CreatedAt.Format(domain.TimestampLayout),
		}
	}

	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleDonationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Donations == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractDonationID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	donation, err := s.ports.Donations.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting donation: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     donation.Payload,
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSessionID extracts the session ID from a URI like donate://sessions/{sessionId}/donations.
func extractSessionID(uri string) string {
	const prefix = uriScheme + "sessions/"
	const suffix = "/donations"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractDonationID extracts the donation ID from a URI like donate://donations/{donationId}.
func extractDonationID(uri string) string {
	const prefix = uriScheme + "donations/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
