// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/simbook/core"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the simbook MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(session *core.Session, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"SIM Phonebook Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{session: session}

	// --- 1. Tool: list_contacts ---
	s.AddTool(mcp.NewTool("list_contacts",
		mcp.WithDescription("List every contact on the SIM phonebook, ordered by name."),
	), h.handleListContacts)

	// --- 2. Tool: get_max_name_length ---
	s.AddTool(mcp.NewTool("get_max_name_length",
		mcp.WithDescription("Report the longest contact name the SIM accepts. Discovers it with trial writes on first use; 0 means unknown."),
	), h.handleGetMaxNameLength)

	// --- 3. Tool: normalize_contact ---
	s.AddTool(mcp.NewTool("normalize_contact",
		mcp.WithDescription("Show how a contact would be stored on the SIM without writing it."),
		mcp.WithString("name", mcp.Description("Contact name."), mcp.Required()),
		mcp.WithString("number", mcp.Description("Phone number; dashes are removed."), mcp.Required()),
	), h.handleNormalizeContact)

	// --- 4. Tool: create_contact ---
	s.AddTool(mcp.NewTool("create_contact",
		mcp.WithDescription("Normalize a contact to fit the SIM and write it."),
		mcp.WithString("name", mcp.Description("Contact name; truncated to the SIM limit."), mcp.Required()),
		mcp.WithString("number", mcp.Description("Phone number; dashes are removed."), mcp.Required()),
	), h.handleCreateContact)

	// --- 5. Tool: delete_contact ---
	s.AddTool(mcp.NewTool("delete_contact",
		mcp.WithDescription("Delete every contact whose name and number match exactly."),
		mcp.WithString("name", mcp.Description("Exact stored name."), mcp.Required()),
		mcp.WithString("number", mcp.Description("Exact stored number."), mcp.Required()),
	), h.handleDeleteContact)

	return s
}

// StartMCPServer starts the simbook MCP server on stdio.
func StartMCPServer(_ context.Context, session *core.Session, version string) error {
	s := NewMCPServer(session, version)
	return server.ServeStdio(s)
}
