package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/donation-cli/internal/testutil"
)

func TestValidateCmd_NotConfigured(t *testing.T) {
	_, _, err := execute(t, "", "validate", "TikTok", "export.zip")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "extraction service not configured")
}

func TestValidateCmd_ValidArchive(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute(t, "", "validate", "TikTok", tiktokExport(t))

	require.NoError(t, err)
	assert.Contains(t, out, "Status:   0 Valid zip")
	assert.Contains(t, out, "Category: json_en")
}

func TestValidateCmd_BadZip(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	path := testutil.WriteFile(t, "export.zip", []byte("not a zip"))

	out, _, err := execute(t, "", "validate", "TikTok", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Status:   1 Bad zipfile")
	assert.Contains(t, out, "Category: unrecognised")
}

func TestValidateCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute(t, "", "validate", "TikTok", tiktokExport(t), "--json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, true, result["valid"])
	assert.Equal(t, "json_en", result["category"])
}

func TestPlatformsCmd(t *testing.T) {
	_, _, err := execute(t, "", "platforms")
	require.Error(t, err)

	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute(t, "", "platforms")

	require.NoError(t, err)
	assert.Contains(t, out, "TikTok")
	assert.Contains(t, out, "application/zip, text/plain")
	assert.Contains(t, out, "json_en")
}
