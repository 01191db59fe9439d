package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ntarasov/equiptrack/internal/config"
)

// RowWriter is the export sink the report service writes to. Implemented by
// the Google Sheets adapter; tests substitute an in-memory writer.
type RowWriter interface {
	WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
	Clear(ctx context.Context, sheetRange string) error
}

// GoogleSheetWriter pushes report rows into a spreadsheet through the
// official Google Sheets API.
type GoogleSheetWriter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

func NewGoogleSheetWriter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetWriter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetWriter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// WriteRows appends the rows to the supplied sheet range.
func (w *GoogleSheetWriter) WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}
	if len(rows) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := w.service.Spreadsheets.Values.Append(w.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append %d rows into range %s: %w", len(rows), sheetRange, err)
	}

	w.logger.Debug("rows appended to sheet",
		zap.String("range", sheetRange),
		zap.Int("rows", len(rows)))
	return nil
}

// Clear empties the sheet range so a fresh export replaces the previous one.
func (w *GoogleSheetWriter) Clear(ctx context.Context, sheetRange string) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	_, err := w.service.Spreadsheets.Values.
		Clear(w.spreadsheetID, sheetRange, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear range %s: %w", sheetRange, err)
	}
	return nil
}
