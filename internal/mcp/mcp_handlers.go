package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/simbook/core"
	"github.com/huangsam/simbook/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	session *core.Session
}

// contactArg reads the name and number arguments shared by the contact tools.
func contactArg(request mcp.CallToolRequest) schema.Contact {
	return schema.Contact{
		Name:   request.GetString("name", ""),
		Number: request.GetString("number", ""),
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListContacts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contacts, err := h.session.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing contacts failed: %v", err)), nil
	}
	return jsonResult(contacts)
}

func (h *toolHandler) handleGetMaxNameLength(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.session.Discoverer().Report(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("capacity discovery failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleNormalizeContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	previews, _, err := h.session.Preview(ctx, contactArg(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("normalization failed: %v", err)), nil
	}
	return jsonResult(previews[0])
}

func (h *toolHandler) handleCreateContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stored, err := h.session.Add(ctx, contactArg(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create failed: %v", err)), nil
	}
	return jsonResult(stored)
}

func (h *toolHandler) handleDeleteContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := contactArg(request)
	if err := h.session.Remove(ctx, c); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted %s <%s>", c.Name, c.Number)), nil
}
