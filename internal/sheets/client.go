package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ignite-agency/website/api/internal/config"
)

const (
	valueInputRaw  = "RAW"
	insertDataRows = "INSERT_ROWS"
	tokenURI       = "https://oauth2.googleapis.com/token"
)

// UpdateResult reports what the Sheets API changed.
type UpdateResult struct {
	SpreadsheetID  string
	UpdatedRange   string
	UpdatedRows    int64
	UpdatedColumns int64
	UpdatedCells   int64
}

// Client wraps the Sheets values API for one spreadsheet.
type Client struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
}

// NewClient authenticates with the configured service account.
func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id must not be empty")
	}

	creds, err := serviceAccountJSON(cfg)
	if err != nil {
		return nil, err
	}

	return newClient(ctx, cfg.SpreadsheetID,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
}

func newClient(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Client, error) {
	srv, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{values: srv.Spreadsheets.Values, spreadsheetID: spreadsheetID}, nil
}

func serviceAccountJSON(cfg config.SheetsConfig) ([]byte, error) {
	if cfg.ServiceAccountEmail == "" || cfg.PrivateKey == "" {
		return nil, errors.New("service account email and private key are required")
	}
	payload := map[string]string{
		"type":         "service_account",
		"client_email": cfg.ServiceAccountEmail,
		"private_key":  cfg.PrivateKey,
		"client_id":    cfg.ClientID,
		"token_uri":    tokenURI,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode service account credentials: %w", err)
	}
	return data, nil
}

// AppendRow adds one row after the last row of the range.
func (c *Client) AppendRow(ctx context.Context, rng string, row []string) error {
	body := &sheetsapi.ValueRange{Values: [][]interface{}{toInterfaces(row)}}
	_, err := c.values.Append(c.spreadsheetID, rng, body).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertDataRows).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", rng, err)
	}
	return nil
}

// ReadRows returns every row of the range, header included.
func (c *Client) ReadRows(ctx context.Context, rng string) ([][]string, error) {
	resp, err := c.values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// UpdateRow overwrites the cells starting at the top-left of rng.
func (c *Client) UpdateRow(ctx context.Context, rng string, row []string) (UpdateResult, error) {
	body := &sheetsapi.ValueRange{Values: [][]interface{}{toInterfaces(row)}}
	resp, err := c.values.Update(c.spreadsheetID, rng, body).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update %s: %w", rng, err)
	}
	return UpdateResult{
		SpreadsheetID:  resp.SpreadsheetId,
		UpdatedRange:   resp.UpdatedRange,
		UpdatedRows:    resp.UpdatedRows,
		UpdatedColumns: resp.UpdatedColumns,
		UpdatedCells:   resp.UpdatedCells,
	}, nil
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}

// SheetName returns the tab name of an A1 range such as "Contact Submissions!A:K".
func SheetName(rng string) string {
	if idx := strings.LastIndex(rng, "!"); idx >= 0 {
		return strings.Trim(rng[:idx], "'")
	}
	return rng
}

// Cell builds the A1 reference of a single cell.
func Cell(sheet, column string, row int) string {
	return fmt.Sprintf("%s!%s%d", sheet, column, row)
}

// Span builds an A1 reference from fromCol to toCol on one row.
func Span(sheet, fromCol, toCol string, row int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", sheet, fromCol, row, toCol, row)
}
