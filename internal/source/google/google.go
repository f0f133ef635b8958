// Package google reads raw tables from a Google spreadsheet through the
// Sheets API.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"masarif/internal/core"
	"masarif/internal/source"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Config selects the spreadsheet and one tab per table role.
type Config struct {
	SpreadsheetID string
	Tabs          map[core.Role]string

	// Credentials resolution, first non-empty wins. When both are empty the
	// GOOGLE_APPLICATION_CREDENTIALS file is used.
	CredentialsJSON string
	CredentialsFile string
}

// Client reads whole sheet tabs as raw tables.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	tabs          map[core.Role]string
}

var _ source.TableReader = (*Client)(nil)

// New creates a Sheets client with read-only scope.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if len(cfg.Tabs) == 0 {
		return nil, errors.New("no sheet tabs configured")
	}

	credentials, err := resolveCredentials(cfg)
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		tabs:          cfg.Tabs,
	}, nil
}

func resolveCredentials(cfg Config) ([]byte, error) {
	if json := strings.TrimSpace(cfg.CredentialsJSON); json != "" {
		return []byte(json), nil
	}
	file := strings.TrimSpace(cfg.CredentialsFile)
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if file == "" {
		return nil, errors.New("missing service account credentials (set GOOGLE_CREDENTIALS_JSON, GOOGLE_CREDENTIALS_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
	credentials, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return credentials, nil
}

// ReadTable fetches the whole tab configured for role. The first row is the
// header; everything below becomes data rows.
func (c *Client) ReadTable(ctx context.Context, role core.Role) (core.RawTable, error) {
	if c.svc == nil {
		return core.RawTable{}, errors.New("sheets service not initialized")
	}
	tab, ok := c.tabs[role]
	if !ok || strings.TrimSpace(tab) == "" {
		return core.RawTable{}, fmt.Errorf("no sheet tab configured for role %s", role)
	}

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, tab).Context(ctx).Do()
	if err != nil {
		return core.RawTable{}, fmt.Errorf("read %s!%s: %w", c.spreadsheetID, tab, err)
	}
	if len(resp.Values) == 0 {
		slog.WarnContext(ctx, "Sheet tab is empty", "role", role, "tab", tab)
		return core.RawTable{}, fmt.Errorf("%s: %w", role, core.ErrNoData)
	}

	table := core.RawTable{
		Columns: headerStrings(resp.Values[0]),
		Rows:    resp.Values[1:],
	}
	slog.DebugContext(ctx, "Fetched sheet tab", "role", role, "tab", tab, "rows", len(table.Rows))
	return table, nil
}

func headerStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
