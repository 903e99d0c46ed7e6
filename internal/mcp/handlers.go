// ABOUTME: MCP tool handler implementations for the poet similarity server
// ABOUTME: Translates tool calls into author vector queries and JSON responses
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/poetsim/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// Querier answers author similarity questions
type Querier interface {
	NearestAuthor(author string) (models.Neighbor, error)
	Rank(author string, limit int) ([]models.Neighbor, error)
	Angle(a, b string) (models.Neighbor, error)
	Authors() []models.AuthorVector
	Run() models.Run
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	q Querier
}

// NewHandlers creates handlers over a querier
func NewHandlers(q Querier) *Handlers {
	return &Handlers{q: q}
}

// NearestAuthor handles the nearest_author tool
func (h *Handlers) NearestAuthor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	author, err := request.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author argument is required and must be a string"), nil
	}

	n, err := h.q.NearestAuthor(author)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("nearest author query failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"author":  author,
		"nearest": n.Author,
		"angle":   n.Angle,
		"cosine":  n.Cosine,
	})
}

// RankAuthors handles the rank_authors tool
func (h *Handlers) RankAuthors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	author, err := request.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author argument is required and must be a string"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}

	neighbors, err := h.q.Rank(author, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rank query failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"author":    author,
		"neighbors": neighbors,
		"count":     len(neighbors),
	})
}

// ListAuthors handles the list_authors tool
func (h *Handlers) ListAuthors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vectors := h.q.Authors()
	run := h.q.Run()

	authors := make([]map[string]interface{}, 0, len(vectors))
	for _, av := range vectors {
		authors = append(authors, map[string]interface{}{
			"author":      av.Author,
			"token_count": av.TokenCount,
			"oov_count":   av.OOVCount,
		})
	}

	response := map[string]interface{}{
		"authors":   authors,
		"count":     len(authors),
		"method":    run.Method,
		"dimension": run.Dimension,
	}
	if len(run.Skipped) > 0 {
		response["skipped"] = run.Skipped
	}

	return jsonResult(response)
}

// AuthorAngle handles the author_angle tool
func (h *Handlers) AuthorAngle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := request.RequireString("author_a")
	if err != nil {
		return mcp.NewToolResultError("author_a argument is required and must be a string"), nil
	}
	b, err := request.RequireString("author_b")
	if err != nil {
		return mcp.NewToolResultError("author_b argument is required and must be a string"), nil
	}

	n, err := h.q.Angle(a, b)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("angle query failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"author_a": a,
		"author_b": b,
		"angle":    n.Angle,
		"cosine":   n.Cosine,
	})
}

func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
