package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/hkreporter/internal/convert"
	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/storage"
)

// defaultWindow returns a window defaulting to the last 7 days. Explicit
// bounds are strict unless strict is false.
func defaultWindow(startStr, endStr string, strict bool) (healthkit.Window, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return healthkit.Window{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return healthkit.Window{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	w := healthkit.SamplesBetween(start, end)
	w.Strict = strict
	return w, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

func kindEnum() []string {
	kinds := models.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// --- Tool definitions ---

var toolListRecordKinds = mcp.NewTool("list_record_kinds",
	mcp.WithDescription("List the record kinds and every known type identifier. Use these values to filter get_records."),
)

var toolGetRecords = mcp.NewTool("get_records",
	mcp.WithDescription("Query stored health records, newest first. Each record is returned in its portable JSON form with its stored id."),
	mcp.WithString("kind", mcp.Description("Record kind"), mcp.Enum(kindEnum()...)),
	mcp.WithString("identifier", mcp.Description("Type identifier (e.g. HKQuantityTypeIdentifierHeartRate)")),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithBoolean("strict", mcp.Description("Only return records fully inside the window. Defaults to true; false returns any overlapping record.")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of records. Defaults to 100.")),
)

var toolGetRecord = mcp.NewTool("get_record",
	mcp.WithDescription("Fetch a single stored record by id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Record UUID")),
)

var toolValidateRecord = mcp.NewTool("validate_record",
	mcp.WithDescription("Check that a portable record converts back to a native object. Returns the native form or the conversion error."),
	mcp.WithString("kind", mcp.Required(), mcp.Description("Record kind"), mcp.Enum(kindEnum()...)),
	mcp.WithString("record", mcp.Required(), mcp.Description("Record JSON")),
)

var toolHarmonizeObject = mcp.NewTool("harmonize_object",
	mcp.WithDescription("Convert a native object in its JSON export form to a portable record without storing it."),
	mcp.WithString("kind", mcp.Required(), mcp.Description("Record kind"), mcp.Enum(kindEnum()...)),
	mcp.WithString("object", mcp.Required(), mcp.Description("Native object JSON")),
)

// --- Tool handlers ---

func (h *handlers) listRecordKinds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(map[string]any{
		"kinds":       models.Kinds(),
		"identifiers": healthkit.Identifiers(),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := storage.RecordFilter{
		Identifier: req.GetString("identifier", ""),
		Limit:      req.GetInt("limit", 100),
	}
	if k := req.GetString("kind", ""); k != "" {
		kind, err := models.ParseKind(k)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filter.Kind = kind
	}

	window, err := defaultWindow(req.GetString("start", ""), req.GetString("end", ""), req.GetBool("strict", true))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	filter.Window = window

	rows, err := h.ds.QueryRecords(ctx, filter)
	if err != nil {
		h.log.Error("mcp get_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if rows == nil {
		rows = []models.RecordRow{}
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"records": rows})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid record id: " + err.Error()), nil
	}

	row, err := h.ds.GetRecord(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("record not found"), nil
	}
	if err != nil {
		h.log.Error("mcp get_record", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(row)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) validateRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := requireKind(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := req.RequireString("record")
	if err != nil {
		return mcp.NewToolResultError("record parameter is required"), nil
	}

	rec, err := convert.DecodeRecord(kind, []byte(body))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	obj, err := convert.Dehydrate(rec)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"valid": true, "native": obj})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) harmonizeObject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := requireKind(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := req.RequireString("object")
	if err != nil {
		return mcp.NewToolResultError("object parameter is required"), nil
	}

	obj, err := convert.DecodeObject(kind, []byte(body))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := convert.Harmonize(obj)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rec)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func requireKind(req mcp.CallToolRequest) (models.Kind, error) {
	k, err := req.RequireString("kind")
	if err != nil {
		return "", errors.New("kind parameter is required")
	}
	return models.ParseKind(k)
}
