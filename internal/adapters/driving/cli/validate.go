package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate <platform> <file>",
	Short: "Check that a data download package can be read",
	Long: `Validate opens a data download package, reports whether it is a readable
zip and which known export shape it matches.`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	result, err := extractionService.Validate(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	status, statusID := "unknown", -1
	if result.Status != nil {
		status, statusID = result.Status.Message, result.Status.ID
	}
	category := ""
	if result.Category != nil {
		category = result.Category.ID
	}

	if validateJSON {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"valid":     result.IsValid(),
			"status_id": statusID,
			"status":    status,
			"category":  category,
		})
	}

	cmd.Printf("Status:   %d %s\n", statusID, status)
	if category == "" {
		category = "unrecognised"
	}
	cmd.Printf("Category: %s\n", category)
	return nil
}
