// Package export converts directories of native payload files into portable
// records written as JSON lines, optionally forwarding them to a server.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/hkreporter/internal/convert"
	"github.com/claude/hkreporter/internal/ingest"
	"github.com/claude/hkreporter/internal/models"
)

// Stats tracks export progress.
type Stats struct {
	FilesTotal     int
	FilesConverted int
	FilesSkipped   int
	FilesErrored   int

	RecordsWritten  int
	RecordsRejected int
	RecordsSent     int
}

// Line is one output record.
type Line struct {
	Kind   models.Kind   `json:"kind"`
	Source string        `json:"source"`
	Record models.Record `json:"record"`
}

// Sender forwards a payload to a server.
type Sender interface {
	SendPayload(ctx context.Context, payload *ingest.Payload) (*ingest.Result, error)
}

// Exporter walks a directory of payload files.
type Exporter struct {
	sender Sender
	state  *StateDB
	root   string
	out    io.Writer
	log    *slog.Logger
	stats  Stats
}

// New creates an Exporter. sender may be nil to only write records.
func New(sender Sender, state *StateDB, root string, out io.Writer, log *slog.Logger) *Exporter {
	return &Exporter{
		sender: sender,
		state:  state,
		root:   root,
		out:    out,
		log:    log,
	}
}

// Run converts every unprocessed *.json file under the root directory.
// Per-file failures are logged and counted; only output and state errors
// abort the run.
func (e *Exporter) Run(ctx context.Context) (*Stats, error) {
	enc := json.NewEncoder(e.out)

	err := filepath.WalkDir(e.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		e.stats.FilesTotal++
		return e.processFile(ctx, path, enc)
	})
	if err != nil {
		return &e.stats, fmt.Errorf("walking %s: %w", e.root, err)
	}
	return &e.stats, nil
}

func (e *Exporter) processFile(ctx context.Context, path string, enc *json.Encoder) error {
	relPath, _ := filepath.Rel(e.root, path)
	info, err := os.Stat(path)
	if err != nil {
		e.log.Warn("stat failed", "file", relPath, "error", err)
		e.stats.FilesErrored++
		return nil
	}

	hash, err := HashFile(path)
	if err != nil {
		e.log.Warn("hash failed", "file", relPath, "error", err)
		e.stats.FilesErrored++
		return nil
	}

	converted, err := e.state.IsConverted(relPath, info.Size(), hash)
	if err != nil {
		return fmt.Errorf("checking state for %s: %w", relPath, err)
	}
	if converted {
		e.stats.FilesSkipped++
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		e.log.Warn("read failed", "file", relPath, "error", err)
		e.stats.FilesErrored++
		return nil
	}
	var payload ingest.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		e.log.Warn("parse failed", "file", relPath, "error", err)
		e.stats.FilesErrored++
		return nil
	}

	written := 0
	for _, b := range payload.Data.Batches() {
		for i, raw := range b.Items {
			rec, err := harmonize(b.Kind, raw)
			if err != nil {
				e.log.Warn("skipping object", "file", relPath, "kind", b.Kind, "index", i, "error", err)
				e.stats.RecordsRejected++
				continue
			}
			if err := enc.Encode(Line{Kind: b.Kind, Source: relPath, Record: rec}); err != nil {
				return fmt.Errorf("writing record: %w", err)
			}
			written++
		}
	}
	e.stats.RecordsWritten += written

	if e.sender != nil && payload.Len() > 0 {
		result, err := e.sender.SendPayload(ctx, &payload)
		if err != nil {
			e.log.Warn("send failed", "file", relPath, "error", err)
			e.stats.FilesErrored++
			return nil
		}
		e.stats.RecordsSent += result.RecordsInserted
	}

	if err := e.state.MarkConverted(relPath, info.Size(), hash, written); err != nil {
		return fmt.Errorf("marking %s converted: %w", relPath, err)
	}
	e.stats.FilesConverted++
	e.log.Info("converted file", "file", relPath, "records", written)
	return nil
}

func harmonize(kind models.Kind, raw []byte) (models.Record, error) {
	obj, err := convert.DecodeObject(kind, raw)
	if err != nil {
		return nil, err
	}
	return convert.Harmonize(obj)
}
