// Package client is the HTTP client the working-copy editors use to
// talk to the panel API. It implements editor.SyncClient.
//
// The signatures exchange types from this module's internal packages,
// so the package is only importable from inside the module. It is not
// a standalone SDK.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/igini-labs/chulseok/internal/editor"
	"github.com/igini-labs/chulseok/internal/model"
	"github.com/igini-labs/chulseok/internal/resolve"
)

// ConfigSyncClient calls the panel API. It is safe for concurrent use.
type ConfigSyncClient struct {
	BaseURL    string       // e.g. "http://localhost:8080"
	Token      string       // JWT issued by /api/panel/auth/login
	HTTPClient *http.Client // optional; nil uses http.DefaultClient
}

var _ editor.SyncClient = (*ConfigSyncClient)(nil)

// New returns a client for the given base URL.
func New(baseURL, token string) *ConfigSyncClient {
	return &ConfigSyncClient{BaseURL: baseURL, Token: token}
}

func (c *ConfigSyncClient) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *ConfigSyncClient) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return c.client().Do(req)
}

func (c *ConfigSyncClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error   string   `json:"error"`
			Details []string `json:"details"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if len(errBody.Details) > 0 {
			return &resolve.ResolutionError{Message: errBody.Error, Details: errBody.Details}
		}
		if errBody.Error != "" {
			return fmt.Errorf("api %s %s: %s", method, path, errBody.Error)
		}
		return fmt.Errorf("api %s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type scheduleConfigPayload struct {
	Enabled             bool                  `json:"enabled"`
	Entries             []model.ScheduleEntry `json:"schedules"`
	CreateThreadMessage string                `json:"create_thread_message"`
	CompletionMessage   string                `json:"check_completion_message"`
	AutoColumnEnabled   bool                  `json:"auto_column_enabled"`
	StartColumn         string                `json:"start_column"`
	EndColumn           string                `json:"end_column"`
	NotificationUserID  string                `json:"notification_user_id"`
}

func (c *ConfigSyncClient) GetScheduleConfig(ctx context.Context, workspace string) (model.ScheduleConfig, string, error) {
	var out scheduleConfigPayload
	path := "/api/panel/schedule/" + url.PathEscape(workspace)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return model.ScheduleConfig{}, "", err
	}
	return model.ScheduleConfig{
		Enabled:             out.Enabled,
		Entries:             out.Entries,
		CreateThreadMessage: out.CreateThreadMessage,
		CompletionMessage:   out.CompletionMessage,
		AutoColumnEnabled:   out.AutoColumnEnabled,
		StartColumn:         out.StartColumn,
		EndColumn:           out.EndColumn,
	}, out.NotificationUserID, nil
}

func (c *ConfigSyncClient) PutScheduleConfig(ctx context.Context, workspace string, cfg model.ScheduleConfig, notificationUserID string) error {
	body := struct {
		Workspace string `json:"workspace"`
		scheduleConfigPayload
	}{
		Workspace: workspace,
		scheduleConfigPayload: scheduleConfigPayload{
			Enabled:             cfg.Enabled,
			Entries:             cfg.Entries,
			CreateThreadMessage: cfg.CreateThreadMessage,
			CompletionMessage:   cfg.CompletionMessage,
			AutoColumnEnabled:   cfg.AutoColumnEnabled,
			StartColumn:         cfg.StartColumn,
			EndColumn:           cfg.EndColumn,
			NotificationUserID:  notificationUserID,
		},
	}
	return c.doJSON(ctx, http.MethodPost, "/api/panel/schedule", body, nil)
}

func (c *ConfigSyncClient) GetColumnChoices(ctx context.Context, workspace string, kind editor.SheetKind) ([]model.ColumnChoice, error) {
	path := "/api/panel/sheet-columns/" + url.PathEscape(workspace)
	if kind == editor.SheetAssignment {
		path = "/api/panel/assignment-sheet-columns/" + url.PathEscape(workspace)
	}
	var out struct {
		Columns []model.ColumnChoice `json:"columns"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Columns, nil
}

func (c *ConfigSyncClient) GetDuplicateDirectory(ctx context.Context, workspace string) (model.DuplicateDirectory, error) {
	var out model.DuplicateDirectory
	path := "/api/panel/duplicate-names/" + url.PathEscape(workspace)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = model.DuplicateDirectory{}
	}
	return out, nil
}

func (c *ConfigSyncClient) ResolveAndPutDuplicateDirectory(ctx context.Context, workspace string, dir model.DuplicateDirectory) (model.DuplicateDirectory, error) {
	var out struct {
		Success       bool                     `json:"success"`
		ConvertedData model.DuplicateDirectory `json:"converted_data"`
	}
	path := "/api/panel/duplicate-names/" + url.PathEscape(workspace)
	if err := c.doJSON(ctx, http.MethodPost, path, dir, &out); err != nil {
		return nil, err
	}
	return out.ConvertedData, nil
}

func (c *ConfigSyncClient) DeleteScheduleEntry(ctx context.Context, workspace string, entryIndex int) error {
	body := struct {
		Workspace string `json:"workspace"`
		Index     int    `json:"index"`
	}{Workspace: workspace, Index: entryIndex}
	return c.doJSON(ctx, http.MethodPost, "/api/panel/schedule/delete", body, nil)
}

func (c *ConfigSyncClient) ToggleScheduleEnabled(ctx context.Context, workspace string) error {
	body := struct {
		Workspace string `json:"workspace"`
	}{Workspace: workspace}
	return c.doJSON(ctx, http.MethodPost, "/api/panel/schedule/toggle", body, nil)
}

// ListScheduleStatus fetches the flattened all-workspace schedule list.
func (c *ConfigSyncClient) ListScheduleStatus(ctx context.Context) ([]model.ScheduleStatus, error) {
	var out struct {
		Schedules []model.ScheduleStatus `json:"schedules"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/panel/schedules/all", nil, &out); err != nil {
		return nil, err
	}
	return out.Schedules, nil
}
