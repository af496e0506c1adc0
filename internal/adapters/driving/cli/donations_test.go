package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

func seedDonations(t *testing.T) (tracking, tiktok *domain.Donation) {
	t.Helper()
	ctx := context.Background()
	payload, err := domain.NewConsentPayload([]domain.ConsentTable{{
		ID:    "tiktok_summary",
		Table: domain.Table{Columns: []string{"Description", "Number"}, Rows: [][]any{{"Followers", 2}, {"Average", 1.5}}},
	}})
	require.NoError(t, err)

	tracking, err = donationService.Record(ctx, domain.Donate{Key: "s1-tracking", JSON: `[{ "message": "user entered script" }]`})
	require.NoError(t, err)
	tiktok, err = donationService.Record(ctx, domain.Donate{Key: "s1-TikTok", JSON: payload.Value})
	require.NoError(t, err)
	_, err = donationService.Record(ctx, domain.Donate{Key: "s2-tracking", JSON: `[]`})
	require.NoError(t, err)
	return tracking, tiktok
}

func TestDonationsCmd_NotConfigured(t *testing.T) {
	for _, args := range [][]string{
		{"donations", "list"},
		{"donations", "show", "x"},
		{"donations", "export", "x", "out.xlsx"},
		{"donations", "delete", "x"},
	} {
		_, _, err := execute(t, "", args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "donation service not configured")
	}
}

func TestDonationsListCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute(t, "", "donations", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No donations stored.")

	seedDonations(t)

	out, _, err = execute(t, "", "donations", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TikTok")
	assert.Contains(t, out, "s2")
	assert.Contains(t, out, "Total")

	out, _, err = execute(t, "", "donations", "list", "--session", "s1", "--json")
	require.NoError(t, err)
	var listed []domain.Donation
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	assert.Len(t, listed, 2)
	for _, d := range listed {
		assert.Equal(t, "s1", d.SessionID)
	}
}

func TestDonationsShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	_, tiktok := seedDonations(t)

	out, _, err := execute(t, "", "donations", "show", tiktok.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "Key:      s1-TikTok")
	assert.Contains(t, out, "Platform: TikTok")
	assert.Contains(t, out, `"id": "tiktok_summary"`)
}

func TestDonationsShowCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "", "donations", "show", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDonationsExportCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	tracking, tiktok := seedDonations(t)
	target := filepath.Join(t.TempDir(), "donation.xlsx")

	out, _, err := execute(t, "", "donations", "export", tiktok.ID, target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 tables to")

	f, err := excelize.OpenFile(target)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("tiktok_summary")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Description", "Number"}, {"Followers", "2"}, {"Average", "1.5"}}, rows)

	_, _, err = execute(t, "", "donations", "export", tracking.ID, target)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDonationsDeleteCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	tracking, _ := seedDonations(t)

	out, _, err := execute(t, "", "donations", "delete", tracking.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted donation "+tracking.ID)

	_, err = donationService.Get(context.Background(), tracking.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = execute(t, "", "donations", "delete", tracking.ID)
	assert.Error(t, err)
}

func TestPayloadResults(t *testing.T) {
	results, err := payloadResults(`[{"id":"a","columns":["x","y"],"rows":[[1,2.5],["s",null]]}]`)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "a", results[0].Title.Text(domain.LanguageNL))
	assert.Equal(t, [][]any{{int64(1), 2.5}, {"s", nil}}, results[0].Table.Rows)

	_, err = payloadResults(`{"id":"a"}`)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = payloadResults(`[{"message":"user entered script"}]`)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
