package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SheetAppender records newsletter signups in an external spreadsheet.
type SheetAppender interface {
	AppendRow(ctx context.Context, values []string) error
}

// SheetsProvider posts rows to a spreadsheet webhook endpoint (an Apps
// Script deployment or similar) authorized with a bearer token.
type SheetsProvider struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewSheetsProvider creates a new SheetsProvider.
func NewSheetsProvider(endpoint, token string) *SheetsProvider {
	return &SheetsProvider{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// AppendRow appends one row of values to the sheet.
func (s *SheetsProvider) AppendRow(ctx context.Context, values []string) error {
	if s.endpoint == "" {
		return fmt.Errorf("sheets endpoint not configured")
	}

	payload, err := json.Marshal(map[string]any{"values": values})
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sheets api call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// decodeBody decodes a JSON response body into dst.
func decodeBody(body io.Reader, dst interface{}) error {
	return json.NewDecoder(body).Decode(dst)
}
