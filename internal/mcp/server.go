// Package mcp exposes stored health records and record validation to MCP
// clients.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("hkreporter", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("hkreporter health record server. Records are HealthKit samples, workouts, summaries and characteristics in a portable JSON form. List kinds first, then query records by kind, identifier and time window."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListRecordKinds, Handler: h.listRecordKinds},
		server.ServerTool{Tool: toolGetRecords, Handler: h.getRecords},
		server.ServerTool{Tool: toolGetRecord, Handler: h.getRecord},
		server.ServerTool{Tool: toolValidateRecord, Handler: h.validateRecord},
		server.ServerTool{Tool: toolHarmonizeObject, Handler: h.harmonizeObject},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecordCounts, Handler: h.recordCounts},
		server.ServerResource{Resource: resTypeCatalog, Handler: h.typeCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecordCounts = mcp.NewResource(
	"hkreporter://record_counts",
	"Record Counts",
	mcp.WithResourceDescription("Number of stored records per kind"),
	mcp.WithMIMEType("application/json"),
)

var resTypeCatalog = mcp.NewResource(
	"hkreporter://type_catalog",
	"Type Catalog",
	mcp.WithResourceDescription("Every known type identifier with its family and preferred unit"),
	mcp.WithMIMEType("application/json"),
)
