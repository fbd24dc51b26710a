package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/igini-labs/chulseok/internal/model"
)

// ColumnProvider reads a sheet header row and turns it into the column
// choices offered by the schedule editor.
type ColumnProvider interface {
	HeaderColumns(ctx context.Context, ws *model.Workspace, sheetName, startColumn, endColumn string) ([]model.ColumnChoice, error)
}

// GoogleSheetsProvider reads headers through the Sheets API using the
// service-account key stored for each workspace.
type GoogleSheetsProvider struct{}

func NewGoogleSheetsProvider() *GoogleSheetsProvider {
	return &GoogleSheetsProvider{}
}

func (p *GoogleSheetsProvider) HeaderColumns(
	ctx context.Context,
	ws *model.Workspace,
	sheetName, startColumn, endColumn string,
) ([]model.ColumnChoice, error) {
	if ws.CredentialsPath == "" {
		return nil, fmt.Errorf("workspace %s has no credentials file", ws.Name)
	}
	key, err := os.ReadFile(ws.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}

	readRange := fmt.Sprintf("'%s'!%s1:%s1", sheetName, startColumn, endColumn)
	resp, err := svc.Spreadsheets.Values.Get(ws.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	start, err := ColumnIndex(startColumn)
	if err != nil {
		return nil, err
	}
	end, err := ColumnIndex(endColumn)
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, fmt.Errorf("end column %s precedes start column %s", endColumn, startColumn)
	}

	var header []interface{}
	if len(resp.Values) > 0 {
		header = resp.Values[0]
	}

	out := make([]model.ColumnChoice, 0, end-start+1)
	for i := start; i <= end; i++ {
		choice := model.ColumnChoice{Letter: ColumnLetter(i)}
		if pos := i - start; pos < len(header) {
			if s, ok := header[pos].(string); ok {
				choice.Name = strings.TrimSpace(s)
			}
		}
		out = append(out, choice)
	}
	return out, nil
}

// ColumnIndex converts a column letter like "A" or "AB" to its
// zero-based index.
func ColumnIndex(letter string) (int, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return 0, fmt.Errorf("empty column letter")
	}
	n := 0
	for _, r := range letter {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column letter %q", letter)
		}
		n = n*26 + int(r-'A'+1)
	}
	return n - 1, nil
}

// ColumnLetter converts a zero-based index back to its column letter.
func ColumnLetter(index int) string {
	n := index + 1
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}
