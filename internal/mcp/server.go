// Package mcp provides a Model Context Protocol server for iconpack.
// It exposes icon listing, inspection and generation as MCP tools so an
// agent editing an icon set can regenerate components itself.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/iconpack/internal/generator"
)

// NewServer creates an MCP server with all iconpack tools registered.
func NewServer(version string, gen *generator.Generator) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "iconpack",
		Version: version,
	}, nil)
	registerTools(server, gen)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// generateAnnotations marks the generate tool: it wipes and rewrites the
// output directory, and repeating it over the same sources changes nothing.
func generateAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all iconpack tools to the server.
func registerTools(server *mcp.Server, gen *generator.Generator) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_icons",
		Description: "List the SVG source files and the component name each one generates. Reads nothing but the source directory listing.",
		Annotations: readOnlyAnnotations(),
	}, handleListIcons(gen))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect_icon",
		Description: "Optimize one SVG source and return the component it would generate, without writing anything.",
		Annotations: readOnlyAnnotations(),
	}, handleInspectIcon(gen))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Regenerate every icon component and both index files. Wipes the output directory first, then runs the formatter.",
		Annotations: generateAnnotations(),
	}, handleGenerate(gen))
}
