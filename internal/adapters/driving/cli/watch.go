package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/donation-cli/internal/adapters/driven/export/xlsx"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/watch"
)

var (
	watchOut      string
	watchRate     float64
	watchSettle   time.Duration
	watchExisting bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <platform> <dir>",
	Short: "Extract every data download package dropped into a folder",
	Long: `Watch monitors a folder for new zip archives. Once an archive has stopped
changing it is extracted and its tables are written to an Excel workbook
named after the archive.

Archives are processed one at a time and at most --rate per second.`,
	Example: `  donate watch TikTok ~/inbox --out ~/tables
  donate watch Facebook ./drop --existing`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "directory for workbooks (default: the watched folder)")
	watchCmd.Flags().Float64Var(&watchRate, "rate", watch.DefaultRate, "maximum archives processed per second")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", watch.DefaultSettle, "time an archive must stay unchanged")
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "also process archives already in the folder")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}
	platform, dir := args[0], args[1]
	if extractorRegistry != nil {
		if _, err := extractorRegistry.Info(platform); err != nil {
			return err
		}
	}
	out := watchOut
	if out == "" {
		out = dir
	}

	w, err := watch.New(dir, archiveHandler(cmd, platform, out, language()), watch.Options{
		Settle:   watchSettle,
		Rate:     watchRate,
		Existing: watchExisting,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for %s archives (Ctrl+C to stop)\n", dir, platform)
	if err := w.Run(cmd.Context()); err != nil {
		return err
	}

	processed, failed := w.Stats()
	cmd.Printf("Processed %d archive(s), %d failed\n", processed, failed)
	return nil
}

// archiveHandler extracts one archive and writes its workbook into out.
func archiveHandler(cmd *cobra.Command, platform, out, lang string) watch.Handler {
	return func(ctx context.Context, path string) error {
		results, err := extractionService.Extract(ctx, platform, path)
		if err != nil && len(results) == 0 {
			return err
		}
		if err != nil {
			cmd.PrintErrf("warning: %s: %v\n", filepath.Base(path), err)
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		target := filepath.Join(out, base+".xlsx")
		if err := xlsx.Write(target, results, lang); err != nil {
			return err
		}
		cmd.Printf("%s: %d tables -> %s\n", filepath.Base(path), len(results), target)
		return nil
	}
}

