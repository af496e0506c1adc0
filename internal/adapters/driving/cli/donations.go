package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/donation-cli/internal/adapters/driven/export/xlsx"
	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

var (
	donationsSession string
	donationsJSON    bool
)

var donationsCmd = &cobra.Command{
	Use:   "donations",
	Short: "Manage stored donations",
	Long:  `List, inspect, export and delete the donations stored on this machine.`,
}

var donationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored donations",
	Args:  cobra.NoArgs,
	RunE:  runDonationsList,
}

var donationsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a donation and its payload",
	Args:  cobra.ExactArgs(1),
	RunE:  runDonationsShow,
}

var donationsExportCmd = &cobra.Command{
	Use:   "export <id> <file.xlsx>",
	Short: "Export a donated payload to an Excel workbook",
	Args:  cobra.ExactArgs(2),
	RunE:  runDonationsExport,
}

var donationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a donation",
	Args:  cobra.ExactArgs(1),
	RunE:  runDonationsDelete,
}

func init() {
	donationsListCmd.Flags().StringVar(&donationsSession, "session", "", "only list donations of this session")
	donationsListCmd.Flags().BoolVar(&donationsJSON, "json", false, "output donations as JSON")
	donationsCmd.AddCommand(donationsListCmd)
	donationsCmd.AddCommand(donationsShowCmd)
	donationsCmd.AddCommand(donationsExportCmd)
	donationsCmd.AddCommand(donationsDeleteCmd)
	rootCmd.AddCommand(donationsCmd)
}

func runDonationsList(cmd *cobra.Command, _ []string) error {
	if donationService == nil {
		return errors.New("donation service not configured")
	}

	donations, err := donationService.List(cmd.Context(), donationsSession)
	if err != nil {
		return fmt.Errorf("failed to list donations: %w", err)
	}

	if donationsJSON {
		return printJSON(cmd.OutOrStdout(), donations)
	}

	if len(donations) == 0 {
		cmd.Println("No donations stored.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Session", "Platform", "Stored", "Size"})
	for _, d := range donations {
		tw.AppendRow(table.Row{d.ID, d.SessionID, d.Platform, d.CreatedAt.Local().Format(domain.TimestampLayout), fmt.Sprintf("%d B", len(d.Payload))})
	}
	tw.AppendFooter(table.Row{"", "", "", "Total", len(donations)})
	tw.Render()
	return nil
}

func runDonationsShow(cmd *cobra.Command, args []string) error {
	if donationService == nil {
		return errors.New("donation service not configured")
	}

	d, err := donationService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get donation: %w", err)
	}

	cmd.Printf("ID:       %s\n", d.ID)
	cmd.Printf("Key:      %s\n", d.Key)
	cmd.Printf("Session:  %s\n", d.SessionID)
	cmd.Printf("Platform: %s\n", d.Platform)
	cmd.Printf("Stored:   %s\n", d.CreatedAt.Local().Format(domain.TimestampLayout))
	cmd.Println("Payload:")

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(d.Payload), "", "  "); err != nil {
		cmd.Println(d.Payload)
		return nil
	}
	cmd.Println(pretty.String())
	return nil
}

func runDonationsExport(cmd *cobra.Command, args []string) error {
	if donationService == nil {
		return errors.New("donation service not configured")
	}

	d, err := donationService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get donation: %w", err)
	}

	results, err := payloadResults(d.Payload)
	if err != nil {
		return err
	}
	if err := xlsx.Write(args[1], results, language()); err != nil {
		return err
	}

	cmd.Printf("Wrote %d tables to %s\n", len(results), args[1])
	return nil
}

func runDonationsDelete(cmd *cobra.Command, args []string) error {
	if donationService == nil {
		return errors.New("donation service not configured")
	}

	if err := donationService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete donation: %w", err)
	}

	cmd.Printf("Deleted donation %s\n", args[0])
	return nil
}

// payloadResults decodes a consent payload back into tables. Payloads that
// are not a list of tables, such as the tracking donation, are rejected.
func payloadResults(payload string) ([]domain.ExtractionResult, error) {
	var tables []struct {
		ID      string   `json:"id"`
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()
	if err := dec.Decode(&tables); err != nil {
		return nil, fmt.Errorf("%w: payload is not a table list: %w", domain.ErrInvalidInput, err)
	}

	out := make([]domain.ExtractionResult, 0, len(tables))
	for _, t := range tables {
		if t.ID == "" || t.Columns == nil {
			return nil, fmt.Errorf("%w: payload is not a table list", domain.ErrInvalidInput)
		}
		rows := make([][]any, len(t.Rows))
		for i, r := range t.Rows {
			row := make([]any, len(r))
			for j, v := range r {
				row[j] = numberValue(v)
			}
			rows[i] = row
		}
		out = append(out, domain.ExtractionResult{
			ID:    t.ID,
			Title: domain.Translatable{domain.LanguageEN: t.ID},
			Table: domain.Table{Columns: t.Columns, Rows: rows},
		})
	}
	return out, nil
}

// numberValue turns decoded JSON numbers back into Go numbers.
func numberValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
