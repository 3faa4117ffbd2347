package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ledgerline/soa/internal/common"
	"github.com/ledgerline/soa/internal/service"
)

// minSheetRows keeps freshly created worksheets from being created at the
// exact statement length; statements get 20 spare rows, never fewer than 100.
const (
	minSheetRows   = 100
	spareSheetRows = 20
)

// worksheetNameFormat produces names like Statement_20240315_103000.
const worksheetNameFormat = "Statement_20060102_150405"

// Store implements service.StatementStore against the Google Sheets API.
type Store struct {
	service        *sheets.Service
	logger         *slog.Logger
	now            func() time.Time
	serviceAccount string
	config         Config
}

var _ service.StatementStore = (*Store)(nil)

// NewStore discovers credentials, authenticates, and returns a statement
// store bound to the configured spreadsheet.
func NewStore(ctx context.Context, config Config, logger *slog.Logger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	path, key, err := DiscoverCredentials(config, logger)
	if err != nil {
		return nil, err
	}

	srv, err := createSheetsService(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Store{
		service:        srv,
		logger:         logger,
		config:         config,
		serviceAccount: key.ClientEmail,
		now:            time.Now,
	}, nil
}

// createSheetsService builds an authenticated Sheets API client from a
// service account key file.
func createSheetsService(ctx context.Context, keyPath string) (*sheets.Service, error) {
	jsonKey, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope, sheets.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// ServiceAccount returns the authenticated service account email.
func (s *Store) ServiceAccount() string {
	return s.serviceAccount
}

// CreateStatement implements service.StatementStore. Each statement gets a
// fresh timestamp-named worksheet; rows are written in batches starting at
// A1 with retry on transient failures.
func (s *Store) CreateStatement(ctx context.Context, rows [][]any) (*service.WriteResult, error) {
	worksheetName := s.now().Format(worksheetNameFormat)
	s.logger.Info("creating new worksheet", "worksheet", worksheetName)

	sheetRows := int64(len(rows) + spareSheetRows)
	if sheetRows < minSheetRows {
		sheetRows = minSheetRows
	}

	addSheet := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: worksheetName,
				GridProperties: &sheets.GridProperties{
					RowCount:    sheetRows,
					ColumnCount: s.config.SheetCols,
				},
			},
		},
	}

	resp, err := s.service.Spreadsheets.BatchUpdate(s.config.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{addSheet},
	}).Context(ctx).Do()
	if err != nil {
		return nil, s.mapAPIError(fmt.Errorf("unable to create worksheet %s: %w", worksheetName, err))
	}

	var sheetID int64
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	}

	if err := common.WithRetry(ctx, func() error {
		return s.writeRows(ctx, worksheetName, rows)
	}, s.retryOptions()); err != nil {
		return nil, fmt.Errorf("failed to write statement data: %w", err)
	}

	s.logger.Info("statement written",
		"worksheet", worksheetName,
		"rows_written", len(rows))

	return &service.WriteResult{
		WorksheetName:  worksheetName,
		WorksheetID:    sheetID,
		RowsWritten:    len(rows),
		SpreadsheetURL: fmt.Sprintf("%s#gid=%d", s.config.SpreadsheetURL(), sheetID),
	}, nil
}

// writeRows writes rows in fixed-size batches starting at row 1, column A.
func (s *Store) writeRows(ctx context.Context, worksheetName string, rows [][]any) error {
	totalBatches := (len(rows) + s.config.BatchSize - 1) / s.config.BatchSize

	for i := 0; i < len(rows); i += s.config.BatchSize {
		end := i + s.config.BatchSize
		if end > len(rows) {
			end = len(rows)
		}

		batch := rows[i:end]
		startRow := i + 1
		rangeStr := fmt.Sprintf("'%s'!A%d", worksheetName, startRow)

		_, err := s.service.Spreadsheets.Values.Update(s.config.SpreadsheetID, rangeStr, &sheets.ValueRange{
			Values: batch,
		}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return s.mapAPIError(fmt.Errorf("failed to write batch starting at row %d: %w", startRow, err))
		}

		s.logger.Debug("wrote batch",
			"batch", i/s.config.BatchSize+1,
			"total_batches", totalBatches,
			"start_row", startRow,
			"rows", len(batch))
	}

	return nil
}

// AppendStatement implements service.StatementStore.
func (s *Store) AppendStatement(ctx context.Context, worksheetName string, rows [][]any) (*service.WriteResult, error) {
	props, err := s.worksheetByTitle(ctx, worksheetName)
	if err != nil {
		return nil, err
	}

	var appended int64
	err = common.WithRetry(ctx, func() error {
		resp, appendErr := s.service.Spreadsheets.Values.Append(s.config.SpreadsheetID, fmt.Sprintf("'%s'!A1", worksheetName), &sheets.ValueRange{
			Values: rows,
		}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
		if appendErr != nil {
			return s.mapAPIError(appendErr)
		}
		if resp.Updates != nil {
			appended = resp.Updates.UpdatedRows
		}
		return nil
	}, s.retryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to append to worksheet %s: %w", worksheetName, err)
	}

	s.logger.Info("statement appended",
		"worksheet", worksheetName,
		"rows_appended", appended)

	return &service.WriteResult{
		WorksheetName:  worksheetName,
		WorksheetID:    props.SheetId,
		RowsWritten:    int(appended),
		SpreadsheetURL: fmt.Sprintf("%s#gid=%d", s.config.SpreadsheetURL(), props.SheetId),
	}, nil
}

// ReadStatement implements service.StatementStore.
func (s *Store) ReadStatement(ctx context.Context, worksheetName string, maxRows int) (*service.WorksheetData, error) {
	if _, err := s.worksheetByTitle(ctx, worksheetName); err != nil {
		return nil, err
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.config.SpreadsheetID, fmt.Sprintf("'%s'", worksheetName)).Context(ctx).Do()
	if err != nil {
		return nil, s.mapAPIError(fmt.Errorf("failed to read worksheet %s: %w", worksheetName, err))
	}

	rows := make([][]any, len(resp.Values))
	copy(rows, resp.Values)
	total := len(rows)
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	return &service.WorksheetData{
		Worksheet: worksheetName,
		Rows:      rows,
		TotalRows: total,
	}, nil
}

// ListStatements implements service.StatementStore.
func (s *Store) ListStatements(ctx context.Context) ([]string, error) {
	spreadsheet, err := s.spreadsheet(ctx)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}
	return titles, nil
}

// CheckAccess implements service.StatementStore.
func (s *Store) CheckAccess(ctx context.Context) (*service.AccessInfo, error) {
	spreadsheet, err := s.spreadsheet(ctx)
	if err != nil {
		return nil, err
	}

	var title string
	if spreadsheet.Properties != nil {
		title = spreadsheet.Properties.Title
	}

	return &service.AccessInfo{
		SpreadsheetTitle: title,
		SpreadsheetID:    s.config.SpreadsheetID,
		SpreadsheetURL:   s.config.SpreadsheetURL(),
		ServiceAccount:   s.serviceAccount,
		WorksheetCount:   len(spreadsheet.Sheets),
	}, nil
}

func (s *Store) spreadsheet(ctx context.Context) (*sheets.Spreadsheet, error) {
	spreadsheet, err := s.service.Spreadsheets.Get(s.config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, s.mapAPIError(fmt.Errorf("unable to access spreadsheet %s: %w", s.config.SpreadsheetID, err))
	}
	return spreadsheet, nil
}

func (s *Store) worksheetByTitle(ctx context.Context, title string) (*sheets.SheetProperties, error) {
	spreadsheet, err := s.spreadsheet(ctx)
	if err != nil {
		return nil, err
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return sheet.Properties, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", common.ErrWorksheetNotFound, title)
}

func (s *Store) retryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  s.config.RetryAttempts,
		InitialDelay: s.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// mapAPIError translates Google API status codes into application errors so
// callers can branch on sentinel errors instead of HTTP codes.
func (s *Store) mapAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", common.ErrSpreadsheetNotFound, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", common.ErrRateLimit, err)
	default:
		return err
	}
}
