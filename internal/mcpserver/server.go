// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the literature library tools for LLM integration via
// stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/zyho/litkeep/internal/litservice"
	"github.com/zyho/litkeep/internal/models"
)

// Server wraps the MCP server with library tools.
type Server struct {
	mcp *server.MCPServer
	svc *litservice.Service
}

// New creates a new MCP server with all library tools registered.
func New(svc *litservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Litkeep",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_papers",
		mcp.WithDescription("Full-text search through recorded papers (title, authors, journal, abstract)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchPapers)

	s.mcp.AddTool(mcp.NewTool("list_topics",
		mcp.WithDescription("List the topic enumeration with entry counts."),
	), s.listTopics)

	s.mcp.AddTool(mcp.NewTool("list_entries",
		mcp.WithDescription("List recorded papers, optionally restricted to one topic."),
		mcp.WithString("topic", mcp.Description("Optional topic id (empty for all topics)")),
	), s.listEntries)

	s.mcp.AddTool(mcp.NewTool("add_entry",
		mcp.WithDescription("Record a new paper under a topic. Fields MUST follow the entry "+
			"format contract; read it first via the get_entry_contract tool or the "+
			"litkeep://entry-format resource. The document and bibliography are "+
			"regenerated automatically."),
		mcp.WithString("topic", mcp.Required(), mcp.Description("Topic id from list_topics")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Paper title")),
		mcp.WithString("authors", mcp.Required(), mcp.Description("Author names separated by semicolons")),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Publication year")),
		mcp.WithString("journal", mcp.Required(), mcp.Description("Journal name")),
		mcp.WithString("abstract", mcp.Required(), mcp.Description("Abstract text, non-blank")),
	), s.addEntry)

	s.mcp.AddTool(mcp.NewTool("get_entry_contract",
		mcp.WithDescription("Returns the canonical entry format contract. "+
			"Call this before recording entries to ensure correct structure."),
	), s.getEntryContract)

	s.mcp.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Returns the generated literature review document as Markdown."),
	), s.getDocument)

	// Resource: entry format contract.
	s.mcp.AddResource(
		mcp.NewResource("litkeep://entry-format", "Entry Format Contract",
			mcp.WithResourceDescription("Canonical entry format that recorded papers must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readEntryFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchPapers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTopics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var lines []string
	for _, t := range s.svc.Topics().All() {
		lines = append(lines, fmt.Sprintf("%s. %s (%d entries)", t.ID, t.Name, len(s.svc.Store().Entries(t.ID))))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) listEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := ""
	if v, err := req.RequireString("topic"); err == nil {
		topic = v
	}

	type item struct {
		Topic    string `json:"topic"`
		Position int    `json:"position"`
		Title    string `json:"title"`
		Authors  string `json:"authors"`
		Year     int    `json:"year"`
		Journal  string `json:"journal"`
	}
	var items []item
	for _, id := range s.svc.Store().TopicIDs() {
		if topic != "" && id != topic {
			continue
		}
		for i, p := range s.svc.Store().Entries(id) {
			items = append(items, item{
				Topic:    id,
				Position: i + 1,
				Title:    p.Title,
				Authors:  p.Authors,
				Year:     p.Year,
				Journal:  p.Journal,
			})
		}
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("no entries found"), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := req.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	authors, err := req.RequireString("authors")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	year, err := req.RequireFloat("year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	journal, err := req.RequireString("journal")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	abstract, err := req.RequireString("abstract")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p := models.Paper{
		Title:    title,
		Authors:  authors,
		Year:     int(year),
		Journal:  journal,
		Abstract: abstract,
	}
	if err := s.svc.AddEntry(ctx, topic, p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("recorded under topic %s: %s", topic, title)), nil
}

func (s *Server) getEntryContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(EntryFormatContract), nil
}

func (s *Server) getDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(string(s.svc.Document())), nil
}

func (s *Server) readEntryFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "litkeep://entry-format",
			MIMEType: "text/markdown",
			Text:     EntryFormatContract,
		},
	}, nil
}
