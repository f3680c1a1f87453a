package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/storage"
)

// HTTPClient implements DataSource by calling the hkreporter REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// records live on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, storage.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// filterParams renders a filter as REST query parameters.
func filterParams(f storage.RecordFilter) url.Values {
	v := url.Values{}
	if f.Kind != "" {
		v.Set("kind", string(f.Kind))
	}
	if f.Identifier != "" {
		v.Set("identifier", f.Identifier)
	}
	if !f.Window.Start.IsZero() {
		v.Set("start", f.Window.Start.Format(time.RFC3339))
	}
	if !f.Window.End.IsZero() {
		v.Set("end", f.Window.End.Format(time.RFC3339))
	}
	if !f.Window.Start.IsZero() || !f.Window.End.IsZero() {
		v.Set("strict", strconv.FormatBool(f.Window.Strict))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}

func (c *HTTPClient) QueryRecords(ctx context.Context, f storage.RecordFilter) ([]models.RecordRow, error) {
	body, err := c.get(ctx, "/api/v1/records", filterParams(f))
	if err != nil {
		return nil, err
	}

	var rows []models.RecordRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode records: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) GetRecord(ctx context.Context, id uuid.UUID) (*models.RecordRow, error) {
	body, err := c.get(ctx, "/api/v1/records/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	var row models.RecordRow
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, fmt.Errorf("httpclient: decode record: %w", err)
	}
	return &row, nil
}

func (c *HTTPClient) CountByKind(ctx context.Context) ([]storage.KindCount, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return stats.ByKind, nil
}
