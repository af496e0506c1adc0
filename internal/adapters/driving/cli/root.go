// Package cli implements the donate command line.
//
// Commands register themselves with rootCmd in init. Services are injected by
// the composition root through Configure before Execute is called.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
	"github.com/custodia-labs/donation-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose bool
	langArg string
)

// ScriptFactory creates the donation script of one session.
type ScriptFactory func(sessionID string) (driving.DonationScript, error)

// Services holds the services the commands drive.
type Services struct {
	Extraction driving.ExtractionService
	Registry   driving.ExtractorRegistry
	Donations  driving.DonationService
	Settings   driving.SettingsService
	NewScript  ScriptFactory
}

var (
	extractionService driving.ExtractionService
	extractorRegistry driving.ExtractorRegistry
	donationService   driving.DonationService
	settingsService   driving.SettingsService
	newScript         ScriptFactory
)

// Configure injects the services used by all commands.
func Configure(s Services) {
	extractionService = s.Extraction
	extractorRegistry = s.Registry
	donationService = s.Donations
	settingsService = s.Settings
	newScript = s.NewScript
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "donate",
	Short: "Extract and donate data download packages",
	Long: `donate extracts summary tables from the data download packages that
platforms such as TikTok and Facebook hand out, shows them to the
participant, and stores the tables they consent to donate.

Run a session in the terminal with "donate run" or "donate tui", or inspect
a package with "donate extract".`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if langArg != "" && !domain.IsSupportedLanguage(langArg) {
			return fmt.Errorf("%w: unsupported language %q (use en or nl)", domain.ErrInvalidInput, langArg)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	rootCmd.PersistentFlags().StringVar(&langArg, "lang", "", "display language, en or nl (default from settings)")
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// language returns the --lang flag, the configured language, or English.
func language() string {
	if langArg != "" {
		return langArg
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			return s.Language
		}
	}
	return domain.LanguageEN
}

// startScript creates the script of a session, generating an id when empty.
func startScript(sessionID string) (driving.DonationScript, error) {
	if newScript == nil {
		return nil, errors.New("donation script not configured")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return newScript(sessionID)
}
