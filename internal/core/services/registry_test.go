package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

func TestExtractorRegistry_GetIgnoresCase(t *testing.T) {
	tiktok := &mockExtractor{platform: "TikTok"}
	registry := NewExtractorRegistry(tiktok)

	got, err := registry.Get("tiktok")

	require.NoError(t, err)
	assert.Same(t, tiktok, got)
}

func TestExtractorRegistry_GetUnknown(t *testing.T) {
	_, err := NewExtractorRegistry().Get("myspace")

	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestExtractorRegistry_KeepsRegistrationOrder(t *testing.T) {
	registry := NewExtractorRegistry(
		&mockExtractor{platform: "TikTok"},
		&mockExtractor{platform: "Facebook", categories: facebookCategories()},
	)
	registry.Register(&mockExtractor{platform: "tiktok", extensions: "application/zip"})

	assert.Equal(t, []string{"tiktok", "Facebook"}, registry.Platforms())

	list := registry.List()
	require.Len(t, list, 2)
	assert.Equal(t, "application/zip", list[0].Extensions)
	assert.Equal(t, []string{"json_en", "html_en"}, list[1].Categories)

	info, err := registry.Info("FACEBOOK")
	require.NoError(t, err)
	assert.Equal(t, "Facebook", info.Platform)
}
