package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hargabyte/archmap/internal/mcp"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the analyzer as an MCP tool over stdio",
	Long: `Serve starts an MCP (Model Context Protocol) server on stdio exposing
the analyze_architecture tool, so AI agents can run architecture analysis
without shelling out to the CLI.`,
	RunE: runServe,
}

var serveMaxBytes int

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&serveMaxBytes, "max-bytes", mcp.DefaultMaxResultBytes,
		"Truncate tool results larger than this many bytes")
}

func runServe(cmd *cobra.Command, args []string) error {
	server := mcp.New(mcp.Config{MaxResultBytes: serveMaxBytes})
	return server.ServeStdio()
}
