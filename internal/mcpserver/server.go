// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver exposes the agent's entrypoints as MCP tools so an MCP
// host can drive the agent over stdio.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/nucleotide-agent/internal/agent"
)

const serverName = "nucleotide-agent"

// FindInput is the search tool's input schema.
type FindInput struct {
	SearchTerms string `json:"search_terms" jsonschema:"free-text search terms matched against indexed record metadata (organism names, titles, authors)"`
}

// GetInput is the record-fetch tool's input schema.
type GetInput struct {
	AccessionNumber string `json:"accession_number" jsonschema:"sequence record identifier (GenBank accession number, GI number, or Nucleotide UID)"`
}

// ArtifactSummary is one produced artifact as reported to the MCP host.
// Inline JSON bodies are embedded; other artifacts are referenced by URI.
type ArtifactSummary struct {
	Mimetype    string          `json:"mimetype" jsonschema:"artifact MIME type"`
	Description string          `json:"description" jsonschema:"human-readable artifact description"`
	Content     json.RawMessage `json:"content,omitempty" jsonschema:"inline JSON body, when the artifact embeds one"`
	URIs        []string        `json:"uris,omitempty" jsonschema:"upstream URLs for artifacts referenced rather than embedded"`
	Metadata    agent.Metadata  `json:"metadata" jsonschema:"artifact metadata"`
}

// OperationResult is the structured tool output for both operations.
type OperationResult struct {
	Log       []string          `json:"log" jsonschema:"process log lines, in order"`
	Artifacts []ArtifactSummary `json:"artifacts" jsonschema:"artifacts produced by the operation, in order"`
	Replies   []string          `json:"replies,omitempty" jsonschema:"messages the agent addressed to the caller"`
}

// collector buffers everything an operation emits so the handler can fold
// it into one tool result. Operations are sequential, so no locking.
type collector struct {
	logs      []string
	artifacts []agent.Artifact
	replies   []string
}

func (c *collector) BeginProcess(summary string) agent.Process {
	c.logs = append(c.logs, summary)
	return c
}

func (c *collector) Log(text string) {
	c.logs = append(c.logs, text)
}

func (c *collector) CreateArtifact(_ context.Context, a agent.Artifact) error {
	c.artifacts = append(c.artifacts, a)
	return nil
}

func (c *collector) Reply(_ context.Context, text string) error {
	c.replies = append(c.replies, text)
	return nil
}

func (c *collector) result() OperationResult {
	out := OperationResult{
		Log:       c.logs,
		Artifacts: []ArtifactSummary{},
		Replies:   c.replies,
	}
	for _, a := range c.artifacts {
		summary := ArtifactSummary{
			Mimetype:    a.Mimetype,
			Description: a.Description,
			URIs:        a.URIs,
			Metadata:    a.Metadata,
		}
		if a.Mimetype == "application/json" {
			summary.Content = json.RawMessage(a.Content)
		}
		out.Artifacts = append(out.Artifacts, summary)
	}
	return out
}

// FindTool defines the MCP tool schema for the search operation.
func FindTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        agent.OpFindSequenceRecords,
		Description: agent.FindDescription,
	}
}

// FindHandler executes a search request.
func FindHandler(a *agent.Agent) mcp.ToolHandlerFor[FindInput, OperationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, OperationResult, error) {
		var sink collector
		if err := a.Run(ctx, agent.OpFindSequenceRecords, agent.Params{SearchTerms: input.SearchTerms}, &sink); err != nil {
			return nil, OperationResult{}, err
		}
		return nil, sink.result(), nil
	}
}

// GetTool defines the MCP tool schema for the record-fetch operation.
func GetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        agent.OpGetSequenceRecord,
		Description: agent.GetDescription,
	}
}

// GetHandler executes a record-fetch request.
func GetHandler(a *agent.Agent) mcp.ToolHandlerFor[GetInput, OperationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, OperationResult, error) {
		var sink collector
		if err := a.Run(ctx, agent.OpGetSequenceRecord, agent.Params{AccessionNumber: input.AccessionNumber}, &sink); err != nil {
			return nil, OperationResult{}, err
		}
		return nil, sink.result(), nil
	}
}

// NewServer builds the MCP server with both tools registered.
func NewServer(a *agent.Agent, version string) *mcp.Server {
	card := a.Card()
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Title:   card.Name,
		Version: version,
	}, nil)
	mcp.AddTool(server, FindTool(), FindHandler(a))
	mcp.AddTool(server, GetTool(), GetHandler(a))
	return server
}

// Serve runs the MCP server on stdio until ctx is cancelled.
func Serve(ctx context.Context, a *agent.Agent, version string) error {
	return NewServer(a, version).Run(ctx, &mcp.StdioTransport{})
}
