package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/donation-cli/internal/adapters/driven/export/xlsx"
)

var (
	extractJSON bool
	extractXLSX string
)

var extractCmd = &cobra.Command{
	Use:   "extract <platform> <file>",
	Short: "Extract the tables of a data download package",
	Long: `Extract reads a data download package and prints the tables a participant
would be asked to donate. Nothing is stored.

Tables whose source data is missing or malformed are reported as warnings;
the remaining tables are still printed.`,
	Example: `  donate extract TikTok ~/Downloads/tiktok.zip
  donate extract Facebook export.zip --json
  donate extract TikTok export.zip --xlsx tables.xlsx --lang nl`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output tables as JSON")
	extractCmd.Flags().StringVar(&extractXLSX, "xlsx", "", "also write the tables to an Excel workbook")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}
	platform, file := args[0], args[1]
	lang := language()

	results, err := extractionService.Extract(cmd.Context(), platform, file)
	if err != nil && len(results) == 0 {
		return fmt.Errorf("extract failed: %w", err)
	}
	if err != nil {
		cmd.PrintErrf("warning: some tables could not be extracted:\n%v\n", err)
	}

	if extractXLSX != "" {
		if err := xlsx.Write(extractXLSX, results, lang); err != nil {
			return err
		}
		cmd.PrintErrf("Wrote %d tables to %s\n", len(results), extractXLSX)
	}

	if extractJSON {
		return printJSON(cmd.OutOrStdout(), resultsJSON(results, lang))
	}

	renderResults(cmd.OutOrStdout(), results, lang)
	return nil
}
