package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"secretsanta/internal/domain"
)

// ErrDuplicateDispatch is returned when a run already has a record for the address.
var ErrDuplicateDispatch = errors.New("dispatch already recorded")

// Schema creates the dispatch log table. It is applied by Migrate.
const Schema = `
CREATE TABLE IF NOT EXISTS dispatch_records (
	id         BIGSERIAL PRIMARY KEY,
	run_id     UUID        NOT NULL,
	email      TEXT        NOT NULL,
	status     TEXT        NOT NULL,
	error      TEXT,
	sent_at    TIMESTAMPTZ NOT NULL,
	UNIQUE (run_id, email)
);
CREATE INDEX IF NOT EXISTS idx_dispatch_records_run_id ON dispatch_records(run_id);
`

type dispatchLogRepository struct {
	DB *sql.DB
}

func NewDispatchLogRepository(db *sql.DB) domain.DispatchLog {
	return &dispatchLogRepository{
		DB: db,
	}
}

// Migrate ensures the dispatch log schema exists.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}

func (r *dispatchLogRepository) Create(ctx context.Context, rec *domain.DispatchRecord) error {
	query := `
		INSERT INTO dispatch_records (run_id, email, status, error, sent_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var errText sql.NullString
	if rec.Error != "" {
		errText = sql.NullString{String: rec.Error, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query, rec.RunID, rec.Email, rec.Status, errText, rec.SentAt).
		Scan(&rec.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateDispatch
		}
		return err
	}
	return nil
}

func (r *dispatchLogRepository) ListByRunID(ctx context.Context, runID string, params domain.PaginationParams) ([]*domain.DispatchRecord, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM dispatch_records WHERE run_id = $1`
	if err := r.DB.QueryRowContext(ctx, countQuery, runID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*domain.DispatchRecord{}, 0, nil
	}

	query := `
		SELECT id, run_id, email, status, error, sent_at
		FROM dispatch_records
		WHERE run_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, runID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	recs := make([]*domain.DispatchRecord, 0)
	for rows.Next() {
		rec := &domain.DispatchRecord{}
		var errText sql.NullString
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Email, &rec.Status, &errText, &rec.SentAt); err != nil {
			return nil, 0, err
		}
		rec.Error = errText.String
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}
