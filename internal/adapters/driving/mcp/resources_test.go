package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

func TestExtractSessionID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid session URI", uri: "donate://sessions/s-1/donations", expected: "s-1"},
		{name: "invalid prefix", uri: "file://sessions/s-1/donations", expected: ""},
		{name: "missing donations suffix", uri: "donate://sessions/s-1", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractSessionID(tt.uri))
		})
	}
}

func TestExtractDonationID(t *testing.T) {
	assert.Equal(t, "d-1", extractDonationID("donate://donations/d-1"))
	assert.Equal(t, "", extractDonationID("file://donations/d-1"))
	assert.Equal(t, "", extractDonationID(""))
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func testDonations() *mockDonationService {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &mockDonationService{donations: []domain.Donation{
		{ID: "d-1", Key: "s-1-tracking", SessionID: "s-1", Platform: "tracking", Payload: `[{ "message": "user entered script" }]`, CreatedAt: at},
		{ID: "d-2", Key: "s-1-TikTok", SessionID: "s-1", Platform: "TikTok", Payload: `[{"id":"tiktok_summary"}]`, CreatedAt: at},
		{ID: "d-3", Key: "s-2-TikTok", SessionID: "s-2", Platform: "TikTok", Payload: `[]`, CreatedAt: at},
	}}
}

func TestServer_handlePlatformsResource(t *testing.T) {
	server, err := NewServer(testPorts())
	require.NoError(t, err)

	result, err := server.handlePlatformsResource(context.Background(), makeReadResourceRequest("donate://platforms"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, `"platform": "TikTok"`)
	assert.Contains(t, result.Contents[0].Text, `"platform": "Facebook"`)
}

func TestServer_handleSessionDonationsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil donation service returns not found", func(t *testing.T) {
		server, err := NewServer(testPorts())
		require.NoError(t, err)

		_, err = server.handleSessionDonationsResource(ctx, makeReadResourceRequest("donate://sessions/s-1/donations"))

		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		ports := testPorts()
		ports.Donations = testDonations()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleSessionDonationsResource(ctx, makeReadResourceRequest("donate://invalid"))

		require.Error(t, err)
	})

	t.Run("lists the session's donations without payloads", func(t *testing.T) {
		ports := testPorts()
		ports.Donations = testDonations()
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleSessionDonationsResource(ctx, makeReadResourceRequest("donate://sessions/s-1/donations"))

		require.NoError(t, err)
		text := result.Contents[0].Text
		assert.Contains(t, text, "s-1-tracking")
		assert.Contains(t, text, "s-1-TikTok")
		assert.NotContains(t, text, "s-2-TikTok")
		assert.NotContains(t, text, "tiktok_summary")
		assert.Contains(t, text, "2024-03-01 12:00:00")
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		ports := testPorts()
		ports.Donations = &mockDonationService{err: errors.New("database error")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleSessionDonationsResource(ctx, makeReadResourceRequest("donate://sessions/s-1/donations"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing donations")
	})
}

func TestServer_handleDonationResource(t *testing.T) {
	ctx := context.Background()
	ports := testPorts()
	ports.Donations = testDonations()
	server, err := NewServer(ports)
	require.NoError(t, err)

	t.Run("returns the payload", func(t *testing.T) {
		result, err := server.handleDonationResource(ctx, makeReadResourceRequest("donate://donations/d-2"))

		require.NoError(t, err)
		assert.Equal(t, `[{"id":"tiktok_summary"}]`, result.Contents[0].Text)
	})

	t.Run("unknown donation returns not found", func(t *testing.T) {
		_, err := server.handleDonationResource(ctx, makeReadResourceRequest("donate://donations/nope"))

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		failing := testPorts()
		failing.Donations = &mockDonationService{err: errors.New("disk full")}
		s, err := NewServer(failing)
		require.NoError(t, err)

		_, err = s.handleDonationResource(ctx, makeReadResourceRequest("donate://donations/d-1"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting donation")
	})
}
