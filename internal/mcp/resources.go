package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/hkreporter/internal/healthkit"
)

// catalogEntry describes one type identifier.
type catalogEntry struct {
	Identifier    string `json:"identifier"`
	Family        string `json:"family"`
	PreferredUnit string `json:"preferred_unit,omitempty"`
}

func buildCatalog() ([]catalogEntry, error) {
	ids := healthkit.Identifiers()
	out := make([]catalogEntry, 0, len(ids))
	for _, id := range ids {
		t, err := healthkit.ObjectTypeForIdentifier(id)
		if err != nil {
			return nil, err
		}
		e := catalogEntry{Identifier: id, Family: t.Family.String()}
		if qt, ok := healthkit.QuantityTypeForIdentifier(id); ok {
			e.PreferredUnit = qt.PreferredUnit.String()
		}
		out = append(out, e)
	}
	return out, nil
}

func (h *handlers) recordCounts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	counts, err := h.ds.CountByKind(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, counts)
}

func (h *handlers) typeCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	catalog, err := buildCatalog()
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, catalog)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
