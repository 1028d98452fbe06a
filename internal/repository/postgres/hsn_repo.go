package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"firsgate/internal/domain"
	"firsgate/internal/port"
)

type hsnRepo struct {
	db *sqlx.DB
}

// NewHSNRepo creates a new PostgreSQL-backed HSNRepository.
func NewHSNRepo(db *sqlx.DB) port.HSNRepository {
	return &hsnRepo{db: db}
}

type hsnRow struct {
	Code        string  `db:"code"`
	Description string  `db:"description"`
	Category    string  `db:"category"`
	TaxRate     float64 `db:"tax_rate"`
}

func (r *hsnRepo) LoadAll(ctx context.Context) ([]domain.HSNCode, error) {
	var rows []hsnRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT code, description, category, tax_rate
		 FROM hsn_codes
		 ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("hsnRepo.LoadAll: %w", err)
	}
	codes := make([]domain.HSNCode, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, domain.HSNCode(row))
	}
	return codes, nil
}

// UpsertHSNCodes writes codes to hsn_codes in one transaction, replacing the
// description, category, and rate of codes already present.
func UpsertHSNCodes(ctx context.Context, db *sqlx.DB, codes []domain.HSNCode) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres.UpsertHSNCodes: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareNamedContext(ctx,
		`INSERT INTO hsn_codes (code, description, category, tax_rate)
		 VALUES (:code, :description, :category, :tax_rate)
		 ON CONFLICT (code) DO UPDATE
		 SET description = EXCLUDED.description,
		     category = EXCLUDED.category,
		     tax_rate = EXCLUDED.tax_rate`)
	if err != nil {
		return fmt.Errorf("postgres.UpsertHSNCodes: prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range codes {
		if _, err := stmt.ExecContext(ctx, hsnRow(c)); err != nil {
			return fmt.Errorf("postgres.UpsertHSNCodes: %s: %w", c.Code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres.UpsertHSNCodes: commit: %w", err)
	}
	return nil
}
