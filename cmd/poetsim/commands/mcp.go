// ABOUTME: MCP command starts the Model Context Protocol server
// ABOUTME: Serves author similarity tools for one corpus over stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/poetsim/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// serverVersion is reported to MCP clients
const serverVersion = "0.1.0"

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	flags := &corpusFlags{}

	cmd := &cobra.Command{
		Use:   "mcp <corpus>",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Loads the corpus vectors once and serves nearest_author, rank_authors,
list_authors and author_angle tools over stdio.`,
		Args: cobra.ExactArgs(1),
		Example: `  # Start MCP server (typically called by an MCP client)
  poetsim mcp poems.tsv

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "poetsim": {
  #       "command": "poetsim",
  #       "args": ["--quiet", "mcp", "/path/to/poems.tsv"]
  #     }
  #   }
  # }`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(cmd, args[0], flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, path string, flags *corpusFlags) error {
	s, cache, err := openSession(cmd, path, flags)
	if err != nil {
		return err
	}
	defer cache.Close()

	server := mcpserver.NewMCPServer("poetsim", serverVersion)
	mcp.RegisterTools(server, s)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server starting on stdio", "authors", len(s.Authors()))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
