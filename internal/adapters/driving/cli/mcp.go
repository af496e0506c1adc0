package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/donation-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve archive tools to AI assistants",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can validate and
inspect data download packages.

Tools: validate_archive, extract_archive, list_platforms.
Resources: donate://platforms, donate://sessions/{id}/donations,
donate://donations/{id}.

By default the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  donate mcp serve

  # HTTP mode
  donate mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Extraction: extractionService,
		Registry:   extractorRegistry,
		Donations:  donationService,
	})
	if err != nil {
		return err
	}

	if port <= 0 {
		return server.Run(cmd.Context())
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", port, err)
	}
	cmd.Printf("MCP server listening on http://localhost:%d\n", ln.Addr().(*net.TCPAddr).Port)
	return server.Serve(cmd.Context(), ln)
}
