// Package mcpadapter exposes the retrieval operations as MCP tools. Tool
// inputs stay untyped on purpose: client implementations disagree on how
// they wrap arguments, and the normalizer owns that tolerance.
package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"docrag/internal/domain"
	"docrag/internal/usecase"
)

// NewServer builds an MCP server with the search and fetch tools registered.
func NewServer(service *usecase.RetrieveUseCase, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "docrag",
			Version: version,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Search the documentation index and return the most relevant chunks with ids, titles, and urls",
	}, NewSearchHandler(service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch",
		Description: "Fetch the full text of a documentation chunk by id",
	}, NewFetchHandler(service))

	return server
}

// NewSearchHandler returns the search tool handler. Pass it to mcp.AddTool.
func NewSearchHandler(service *usecase.RetrieveUseCase) func(context.Context, *mcp.CallToolRequest, map[string]any) (*mcp.CallToolResult, domain.SearchResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input map[string]any) (*mcp.CallToolResult, domain.SearchResponse, error) {
		resp, err := service.Search(ctx, input)
		if err != nil {
			return nil, domain.SearchResponse{}, err
		}
		return nil, *resp, nil
	}
}

// NewFetchHandler returns the fetch tool handler. A miss is a structured
// not-found payload, not a tool error.
func NewFetchHandler(service *usecase.RetrieveUseCase) func(context.Context, *mcp.CallToolRequest, map[string]any) (*mcp.CallToolResult, domain.FetchResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input map[string]any) (*mcp.CallToolResult, domain.FetchResponse, error) {
		resp, err := service.Fetch(ctx, input)
		if err != nil {
			return nil, domain.FetchResponse{}, err
		}
		return nil, *resp, nil
	}
}
