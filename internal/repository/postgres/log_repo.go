package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"firsgate/internal/domain"
	"firsgate/internal/port"
)

type logRepo struct {
	db *sqlx.DB
}

// NewLogRepo creates a new PostgreSQL-backed LogRepository.
func NewLogRepo(db *sqlx.DB) port.LogRepository {
	return &logRepo{db: db}
}

func (r *logRepo) InsertSuccess(ctx context.Context, entry *domain.LogEntry) error {
	ts, err := parseTimestamp(entry.Timestamp)
	if err != nil {
		return fmt.Errorf("logRepo.InsertSuccess: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO api_success_logs (timestamp, irn, status, created_at)
		 VALUES ($1, $2, $3, NOW())`,
		ts, entry.IRN, string(domain.LogTypeSuccess))
	if err != nil {
		return fmt.Errorf("logRepo.InsertSuccess: %w", err)
	}
	return nil
}

func (r *logRepo) InsertError(ctx context.Context, entry *domain.LogEntry) error {
	ts, err := parseTimestamp(entry.Timestamp)
	if err != nil {
		return fmt.Errorf("logRepo.InsertError: %w", err)
	}
	var details *string
	if len(entry.ErrorDetails) > 0 {
		s := string(entry.ErrorDetails)
		details = &s
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO api_error_logs (timestamp, irn, source_file, http_code, error_type, handler,
		                             detailed_message, public_message, error_details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`,
		ts, entry.IRN, nullable(entry.SourceFile), entry.HTTPCode, entry.ErrorType, entry.Handler,
		entry.DetailedMessage, entry.PublicMessage, details)
	if err != nil {
		return fmt.Errorf("logRepo.InsertError: %w", err)
	}
	return nil
}

type successRow struct {
	Timestamp time.Time `db:"timestamp"`
	IRN       string    `db:"irn"`
	Status    string    `db:"status"`
}

type errorRow struct {
	Timestamp       time.Time      `db:"timestamp"`
	IRN             string         `db:"irn"`
	SourceFile      sql.NullString `db:"source_file"`
	HTTPCode        int            `db:"http_code"`
	ErrorType       string         `db:"error_type"`
	Handler         sql.NullString `db:"handler"`
	DetailedMessage sql.NullString `db:"detailed_message"`
	PublicMessage   sql.NullString `db:"public_message"`
	ErrorDetails    sql.NullString `db:"error_details"`
}

func (r *logRepo) Recent(ctx context.Context, kind domain.LogKind, limit int) ([]domain.LogEntry, error) {
	if kind == domain.LogKindSuccess {
		var rows []successRow
		err := r.db.SelectContext(ctx, &rows,
			`SELECT timestamp, irn, status FROM api_success_logs
			 ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
		if err != nil {
			return nil, fmt.Errorf("logRepo.Recent success: %w", err)
		}
		entries := make([]domain.LogEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, domain.LogEntry{
				Timestamp: row.Timestamp.Format(domain.LogTimeLayout),
				Type:      domain.LogType(row.Status),
				IRN:       row.IRN,
			})
		}
		return entries, nil
	}

	var rows []errorRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT timestamp, irn, source_file, http_code, error_type, handler,
		        detailed_message, public_message, error_details::text AS error_details
		 FROM api_error_logs
		 ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("logRepo.Recent error: %w", err)
	}
	entries := make([]domain.LogEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.LogEntry{
			Timestamp:       row.Timestamp.Format(domain.LogTimeLayout),
			Type:            domain.LogTypeError,
			ErrorType:       row.ErrorType,
			HTTPCode:        row.HTTPCode,
			IRN:             row.IRN,
			SourceFile:      row.SourceFile.String,
			Handler:         row.Handler.String,
			DetailedMessage: row.DetailedMessage.String,
			PublicMessage:   row.PublicMessage.String,
		}
		if row.ErrorType == "exception" {
			entry.Type = domain.LogTypeException
		}
		if row.ErrorDetails.Valid {
			entry.ErrorDetails = json.RawMessage(row.ErrorDetails.String)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *logRepo) CountOn(ctx context.Context, kind domain.LogKind, date string) (int, error) {
	table := "api_error_logs"
	if kind == domain.LogKindSuccess {
		table = "api_success_logs"
	}
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM `+table+` WHERE timestamp::date = $1::date`, date)
	if err != nil {
		return 0, fmt.Errorf("logRepo.CountOn: %w", err)
	}
	return count, nil
}

func (r *logRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	ts, err := time.ParseInLocation(domain.LogTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return ts, nil
}

func nullable(s string) *string {
	if s == "" || s == "N/A" {
		return nil
	}
	return &s
}
