package cli

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("donate version %s %s/%s (%s)\n", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
		if extractorRegistry != nil {
			cmd.Printf("platforms: %s\n", strings.Join(extractorRegistry.Platforms(), ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
