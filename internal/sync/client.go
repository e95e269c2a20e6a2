// Package sync mirrors local state to a remote key-value backup. One flat
// record per sync key, last completed upload wins; no finer-grained merge.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/streak/internal/store"
)

// backupTable is the remote table holding one row per sync key.
const backupTable = "user_backups"

// DefaultTimeout bounds every remote call.
const DefaultTimeout = 15 * time.Second

// ErrNotFound means the remote has no record for the given sync key. It is
// a distinct outcome from transport or server failures.
var ErrNotFound = errors.New("no backup found for this sync key")

// Backup is the downloaded remote record.
type Backup struct {
	Logs      []store.Entry `json:"logs"`
	Config    store.Config  `json:"config"`
	UpdatedAt string        `json:"updated_at"`
}

// uploadRecord is the upsert payload. The server resolves key conflicts by
// overwriting the whole prior record.
type uploadRecord struct {
	ID        string        `json:"id"`
	Logs      []store.Entry `json:"logs"`
	Config    store.Config  `json:"config"`
	UpdatedAt string        `json:"updated_at"`
}

// GenerateSyncKey returns a fresh opaque backup identifier (UUID v4).
// Generated once per user and then kept for the life of the association.
func GenerateSyncKey() string {
	return uuid.NewString()
}

// Client talks to the remote backup store.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

// NewClient creates a backup client for the given endpoint. A zero timeout
// falls back to DefaultTimeout; a nil logger falls back to slog.Default.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
		now:     time.Now,
	}
}

// Upload upserts the full log collection and config under key. An empty key
// is a logged no-op, never an error: sync simply is not set up yet.
func (c *Client) Upload(ctx context.Context, key string, logs []store.Entry, cfg store.Config) error {
	if key == "" {
		c.logger.Warn("sync key is empty, skipping upload")
		return nil
	}
	if logs == nil {
		logs = []store.Entry{}
	}

	payload, err := json.Marshal(uploadRecord{
		ID:        key,
		Logs:      logs,
		Config:    cfg,
		UpdatedAt: c.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, backupTable)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	// Same key overwrites the prior record entirely.
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Download fetches the backup for key. A missing record is reported as
// ErrNotFound, distinct from transport and server failures.
func (c *Client) Download(ctx context.Context, key string) (*Backup, error) {
	if key == "" {
		return nil, fmt.Errorf("sync key is empty")
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s?id=%s&select=%s",
		c.baseURL, backupTable,
		url.QueryEscape("eq."+key),
		url.QueryEscape("logs,config,updated_at"),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setAuthHeaders(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status %d: %s", resp.StatusCode, string(body))
	}

	var records []Backup
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decoding backup response: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	b := records[0]
	if b.Logs == nil {
		b.Logs = []store.Entry{}
	}
	return &b, nil
}

// SilentUpload is Upload in fire-and-forget form: failures are logged and
// swallowed, never surfaced and never retried.
func (c *Client) SilentUpload(key string, logs []store.Entry, cfg store.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), c.httpc.Timeout)
	defer cancel()

	if err := c.Upload(ctx, key, logs, cfg); err != nil {
		c.logger.Warn("silent upload failed", "error", err)
	}
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
