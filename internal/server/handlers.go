package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/hkreporter/internal/convert"
	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/ingest"
	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/observability"
	"github.com/claude/hkreporter/internal/storage"
)

const maxBodyBytes = 32 << 20

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var payload ingest.Payload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := s.ingest.Ingest(r.Context(), &payload)
	if err != nil {
		s.log.Error("ingest error", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStoreRecord(w http.ResponseWriter, r *http.Request) {
	kind, body, ok := s.readKindBody(w, r)
	if !ok {
		return
	}
	rec, err := convert.DecodeRecord(kind, body)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.ingest.IngestRecord(r.Context(), rec)
	if err != nil {
		if hkerror.KindOf(err) == 0 {
			s.log.Error("storing record", "kind", kind, "error", err)
		}
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if result.RecordsInserted > 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, result)
}

func (s *Server) handleHarmonize(w http.ResponseWriter, r *http.Request) {
	kind, body, ok := s.readKindBody(w, r)
	if !ok {
		return
	}
	obj, err := convert.DecodeObject(kind, body)
	if err == nil {
		var rec models.Record
		rec, err = convert.Harmonize(obj)
		if err == nil {
			s.metrics.ObserveConversion(kind, observability.Harmonize, nil)
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	s.metrics.ObserveConversion(kind, observability.Harmonize, err)
	writeError(w, err)
}

func (s *Server) handleDehydrate(w http.ResponseWriter, r *http.Request) {
	kind, body, ok := s.readKindBody(w, r)
	if !ok {
		return
	}
	rec, err := convert.DecodeRecord(kind, body)
	if err == nil {
		var obj healthkit.Object
		obj, err = convert.Dehydrate(rec)
		if err == nil {
			s.metrics.ObserveConversion(kind, observability.Dehydrate, nil)
			writeJSON(w, http.StatusOK, obj)
			return
		}
	}
	s.metrics.ObserveConversion(kind, observability.Dehydrate, err)
	writeError(w, err)
}

// readKindBody resolves the {kind} URL parameter and reads the request body.
// It writes the error response itself and reports false on failure.
func (s *Server) readKindBody(w http.ResponseWriter, r *http.Request) (models.Kind, []byte, bool) {
	kind, err := models.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err)
		return "", nil, false
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return "", nil, false
	}
	return kind, body, true
}

func (s *Server) handleQueryRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRecordFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := s.db.QueryRecords(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.RecordRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid record ID"})
		return
	}

	row, err := s.db.GetRecord(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"kinds":       models.Kinds(),
		"identifiers": healthkit.Identifiers(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleIngestLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid limit %q", v)})
			return
		}
		limit = min(n, 500)
	}
	logs, err := s.db.QueryIngestLogs(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if logs == nil {
		logs = []models.IngestLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps conversion and storage failures to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case hkerror.KindOf(err) == hkerror.InvalidValue:
		status = http.StatusBadRequest
	case hkerror.KindOf(err) == hkerror.InvalidType, hkerror.KindOf(err) == hkerror.InvalidIdentifier:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func parseRecordFilter(r *http.Request) (storage.RecordFilter, error) {
	q := r.URL.Query()
	f := storage.RecordFilter{Identifier: q.Get("identifier")}

	if v := q.Get("kind"); v != "" {
		kind, err := models.ParseKind(v)
		if err != nil {
			return f, err
		}
		f.Kind = kind
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("invalid limit %q", v)
		}
		f.Limit = n
	}

	window, err := parseWindow(r)
	if err != nil {
		return f, err
	}
	f.Window = window
	return f, nil
}

// parseWindow reads start, end and strict. Missing bounds are open.
func parseWindow(r *http.Request) (healthkit.Window, error) {
	q := r.URL.Query()
	startStr := q.Get("start")
	endStr := q.Get("end")

	var start, end time.Time
	var err error
	if startStr != "" {
		start, err = parseTime(startStr, false)
		if err != nil {
			return healthkit.Window{}, fmt.Errorf("invalid start: %w", err)
		}
	}
	if endStr != "" {
		end, err = parseTime(endStr, true)
		if err != nil {
			return healthkit.Window{}, fmt.Errorf("invalid end: %w", err)
		}
	}
	if start.IsZero() && end.IsZero() {
		return healthkit.AllSamples(), nil
	}

	w := healthkit.SamplesBetween(start, end)
	if v := q.Get("strict"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return healthkit.Window{}, fmt.Errorf("invalid strict %q", v)
		}
		w.Strict = strict
	}
	return w, nil
}

// parseTime accepts RFC 3339 or a date. A date used as an end bound means
// the end of that day.
func parseTime(s string, endOfDay bool) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24 * time.Hour)
	}
	return t, nil
}
