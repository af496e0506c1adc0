package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/donation-cli/internal/adapters/driven/archive/zipfs"
	"github.com/custodia-labs/donation-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
	"github.com/custodia-labs/donation-cli/internal/core/services"
	"github.com/custodia-labs/donation-cli/internal/extractors/tiktok"
	"github.com/custodia-labs/donation-cli/internal/testutil"
)

// setupTestServices wires the real services over in-memory stores and
// returns a cleanup that restores the unconfigured state.
func setupTestServices() func() {
	opener := zipfs.NewOpener(0)
	registry := services.NewExtractorRegistry(tiktok.New(opener, tiktok.Options{}))
	extraction := services.NewExtractionService(registry, opener)

	Configure(Services{
		Extraction: extraction,
		Registry:   registry,
		Donations:  services.NewDonationService(memory.NewDonationStore()),
		Settings:   services.NewSettingsService(memory.NewConfigStore()),
		NewScript: func(sessionID string) (driving.DonationScript, error) {
			return services.NewScript(sessionID, services.PlatformFlows(registry, extraction))
		},
	})

	return func() {
		Configure(Services{})
		resetFlags()
	}
}

// resetFlags clears flag values that persist between executions of rootCmd.
func resetFlags() {
	verbose, langArg = false, ""
	extractJSON, extractXLSX = false, ""
	validateJSON = false
	runSession, tuiSession = "", ""
	donationsSession, donationsJSON = "", false
	watchOut, watchRate, watchSettle, watchExisting = "", watch.DefaultRate, watch.DefaultSettle, false
}

// execute runs rootCmd with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// tiktokExport is a TikTok export with counts for the summary table and no
// timed activity, so only the summary table has rows.
func tiktokExport(t *testing.T) string {
	t.Helper()
	date := func(d string) map[string]any { return map[string]any{"Date": d} }
	return testutil.WriteZip(t, testutil.JSONEntry(t, "user_data.json", map[string]any{
		"Activity": map[string]any{
			"Follower List":          map[string]any{"FansList": []any{date("2022-01-01 00:00:00"), date("2022-01-02 00:00:00")}},
			"Following List":         map[string]any{"Following": []any{date("2022-01-01 00:00:00")}},
			"Like List":              map[string]any{"ItemFavoriteList": []any{}},
			"Video Browsing History": map[string]any{"VideoList": []any{}},
		},
		"Profile": map[string]any{
			"Profile Information": map[string]any{"ProfileMap": map[string]any{"likesReceived": "87"}},
		},
		"Video":   map[string]any{"Videos": map[string]any{"VideoList": []any{}}},
		"Comment": map[string]any{"Comments": map[string]any{"CommentsList": []any{}}},
	}))
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "donate", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)

	require.NotNil(t, rootCmd.PersistentFlags().Lookup("lang"))
}

func TestRootCmd_RejectsUnsupportedLanguage(t *testing.T) {
	_, _, err := execute(t, "", "--lang", "fr", "version")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"extract", "validate", "platforms", "run", "tui", "donations", "settings", "mcp", "watch", "version"} {
		assert.True(t, names[name], "missing command %s", name)
	}
}

func TestLanguage(t *testing.T) {
	defer resetFlags()

	assert.Equal(t, "en", language())

	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, settingsService.SetLanguage("nl"))
	assert.Equal(t, "nl", language())

	langArg = "en"
	assert.Equal(t, "en", language())
}

func TestStartScript(t *testing.T) {
	_, err := startScript("s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")

	cleanup := setupTestServices()
	defer cleanup()

	script, err := startScript("s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", script.SessionID())

	script, err = startScript("")
	require.NoError(t, err)
	assert.Len(t, script.SessionID(), 36)
}

func TestSetVersion(t *testing.T) {
	old := version
	defer func() { version = old }()

	SetVersion("")
	assert.Equal(t, old, version)

	SetVersion("1.2.3")
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "donate version 1.2.3 "), out)
}
