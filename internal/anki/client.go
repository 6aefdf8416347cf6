package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	// DefaultURL is the default AnkiConnect endpoint.
	DefaultURL = "http://127.0.0.1:8765"

	// connectVersion is the AnkiConnect API version this client speaks.
	connectVersion = 6
)

// Client is an AnkiConnect HTTP client implementing Collection.
type Client struct {
	url        string
	httpClient *http.Client
}

// ClientConfig holds configuration for the AnkiConnect client.
type ClientConfig struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional (tests)
}

// NewClient creates a new AnkiConnect client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		url:        cfg.URL,
		httpClient: httpClient,
	}
}

// connectRequest is the AnkiConnect request envelope.
type connectRequest struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

// connectResponse is the AnkiConnect response envelope.
type connectResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke performs a single AnkiConnect action and decodes the result
// into out (out may be nil for actions with no useful result).
func (c *Client) invoke(ctx context.Context, action string, params any, out any) error {
	body, err := json.Marshal(connectRequest{
		Action:  action,
		Version: connectVersion,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("anki-connect unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", action, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("anki-connect returned status %d: %s", resp.StatusCode, string(data))
	}

	var envelope connectResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", action, err)
	}
	if envelope.Error != nil && *envelope.Error != "" {
		return fmt.Errorf("anki-connect %s failed: %s", action, *envelope.Error)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", action, err)
		}
	}
	return nil
}

// Version returns the AnkiConnect API version of the running instance.
func (c *Client) Version(ctx context.Context) (int, error) {
	var v int
	if err := c.invoke(ctx, "version", nil, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// WaitReady polls the version action until AnkiConnect responds or the
// timeout elapses. Used for host readiness only; note processing itself
// never retries.
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
	return retry.Do(
		func() error {
			_, err := c.Version(ctx)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uint(timeout.Seconds())),
		retry.Delay(1*time.Second),
	)
}

// noteInfo is the notesInfo wire shape.
type noteInfo struct {
	NoteID    int64                `json:"noteId"`
	ModelName string               `json:"modelName"`
	Fields    map[string]noteField `json:"fields"`
}

type noteField struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// SelectedNotes returns the notes currently selected in the Anki browser,
// in selection order.
func (c *Client) SelectedNotes(ctx context.Context) ([]Note, error) {
	var ids []int64
	if err := c.invoke(ctx, "guiSelectedNotes", nil, &ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var infos []noteInfo
	params := map[string]any{"notes": ids}
	if err := c.invoke(ctx, "notesInfo", params, &infos); err != nil {
		return nil, err
	}

	// notesInfo preserves input order; index by ID anyway in case the
	// host skips unknown IDs.
	byID := make(map[int64]noteInfo, len(infos))
	for _, info := range infos {
		byID[info.NoteID] = info
	}

	notes := make([]Note, 0, len(ids))
	for _, id := range ids {
		info, ok := byID[id]
		if !ok {
			continue
		}
		fields := make(map[string]string, len(info.Fields))
		for name, f := range info.Fields {
			fields[name] = f.Value
		}
		notes = append(notes, Note{
			ID:     info.NoteID,
			Model:  info.ModelName,
			Fields: fields,
		})
	}
	return notes, nil
}

// SaveFields writes the given field values to a note and persists the
// change through AnkiConnect's updateNoteFields action.
func (c *Client) SaveFields(ctx context.Context, noteID int64, fields map[string]string) error {
	params := map[string]any{
		"note": map[string]any{
			"id":     noteID,
			"fields": fields,
		},
	}
	if err := c.invoke(ctx, "updateNoteFields", params, nil); err != nil {
		return fmt.Errorf("failed to save note %d: %w", noteID, err)
	}
	return nil
}
