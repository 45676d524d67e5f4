package cli

import (
	"github.com/spf13/cobra"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can load a PDF
and ask questions about it.

Tools:
  ingest_pdf    load a PDF as the active document
  ask_document  answer a question about the active document
  index_pdf     build an index ahead of time

Resources:
  pda://history                       questions and answers so far
  pda://sessions/{sessionId}/history  log of another session

By default the server speaks JSON-RPC over stdio. Use --http to serve the
streamable HTTP transport instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  pda mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  pda mcp serve --http :8080

Desktop configuration:
  {
    "mcpServers": {
      "pda": {
        "command": "/path/to/pda",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("http", "", "HTTP listen address (empty = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return err
	}

	rt, err := loadRuntime(cmd, RuntimeOptions{})
	if err != nil {
		return err
	}
	defer rt.Close()

	server, err := mcp.NewServer(&mcp.Ports{
		Assistant: rt.Assistant,
		Indexer:   rt.Indexer,
	})
	if err != nil {
		return err
	}

	if addr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
