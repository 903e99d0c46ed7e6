// ABOUTME: MCP tool definitions and registration for the poet similarity server
// ABOUTME: Declares JSON schemas for the four author query tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, q Querier) *Handlers {
	handlers := NewHandlers(q)

	// 1. nearest_author - single closest author by angle
	server.AddTool(mcp.Tool{
		Name:        "nearest_author",
		Description: "Find the author whose poetry vector has the smallest angle to the given author's. Ties go to the author listed first in the corpus.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"author": map[string]interface{}{
					"type":        "string",
					"description": "Author name exactly as it appears in the corpus",
				},
			},
			Required: []string{"author"},
		},
	}, handlers.NearestAuthor)

	// 2. rank_authors - all other authors, closest first
	server.AddTool(mcp.Tool{
		Name:        "rank_authors",
		Description: "Rank the other authors by angular distance to the given author, closest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"author": map[string]interface{}{
					"type":        "string",
					"description": "Author name exactly as it appears in the corpus",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of authors to return (default: 10, 0 for all)",
					"default":     10,
				},
			},
			Required: []string{"author"},
		},
	}, handlers.RankAuthors)

	// 3. list_authors - corpus authors with token statistics
	server.AddTool(mcp.Tool{
		Name:        "list_authors",
		Description: "List every author in the corpus with in-vocabulary and out-of-vocabulary token counts.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListAuthors)

	// 4. author_angle - distance between two named authors
	server.AddTool(mcp.Tool{
		Name:        "author_angle",
		Description: "Angle in radians (and cosine) between two authors' poetry vectors.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"author_a": map[string]interface{}{
					"type":        "string",
					"description": "First author",
				},
				"author_b": map[string]interface{}{
					"type":        "string",
					"description": "Second author",
				},
			},
			Required: []string{"author_a", "author_b"},
		},
	}, handlers.AuthorAngle)

	return handlers
}
