package mcp

import (
	"context"

	"github.com/google/uuid"

	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/storage"
)

// DataSource abstracts the record store for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QueryRecords(ctx context.Context, f storage.RecordFilter) ([]models.RecordRow, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*models.RecordRow, error)
	CountByKind(ctx context.Context) ([]storage.KindCount, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
