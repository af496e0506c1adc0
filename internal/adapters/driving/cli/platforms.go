package cli

import (
	"errors"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List the supported platforms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if extractorRegistry == nil {
			return errors.New("extractor registry not configured")
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(cmd.OutOrStdout())
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"Platform", "File types", "Export shapes"})
		for _, info := range extractorRegistry.List() {
			tw.AppendRow(table.Row{info.Platform, info.Extensions, strings.Join(info.Categories, ", ")})
		}
		tw.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}
