package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"secretsanta/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestDispatchLogRepository_Create(t *testing.T) {
	ctx := context.Background()
	sentAt := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rec     *domain.DispatchRecord
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			rec:  &domain.DispatchRecord{RunID: "run-1", Email: "bob@example.com", Status: domain.DispatchStatusSent, SentAt: sentAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO dispatch_records \(run_id, email, status, error, sent_at\)`).
					WithArgs("run-1", "bob@example.com", domain.DispatchStatusSent, sql.NullString{}, sentAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("42"))
			},
			wantID: "42",
		},
		{
			name: "failed dispatch stores error text",
			rec:  &domain.DispatchRecord{RunID: "run-1", Email: "carol@example.com", Status: domain.DispatchStatusFailed, Error: "421", SentAt: sentAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO dispatch_records`).
					WithArgs("run-1", "carol@example.com", domain.DispatchStatusFailed, sql.NullString{String: "421", Valid: true}, sentAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("43"))
			},
			wantID: "43",
		},
		{
			name: "unique violation returns ErrDuplicateDispatch",
			rec:  &domain.DispatchRecord{RunID: "run-1", Email: "bob@example.com", Status: domain.DispatchStatusSent, SentAt: sentAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO dispatch_records`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   ErrDuplicateDispatch,
		},
		{
			name: "db error",
			rec:  &domain.DispatchRecord{RunID: "run-1", Email: "bob@example.com", Status: domain.DispatchStatusSent, SentAt: sentAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO dispatch_records`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
			errIs:   sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewDispatchLogRepository(db)
			err = repo.Create(ctx, tt.rec)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, tt.rec.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDispatchLogRepository_ListByRunID(t *testing.T) {
	ctx := context.Background()
	sentAt := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)
	params := domain.PaginationParams{Page: 2, PageSize: 2}

	tests := []struct {
		name      string
		mock      func(mock sqlmock.Sqlmock)
		wantTotal int
		wantLen   int
		wantErr   bool
	}{
		{
			name: "page of records",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dispatch_records`).
					WithArgs("run-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
				mock.ExpectQuery(`SELECT id, run_id, email, status, error, sent_at`).
					WithArgs("run-1", 2, 2).
					WillReturnRows(sqlmock.NewRows([]string{"id", "run_id", "email", "status", "error", "sent_at"}).
						AddRow("3", "run-1", "carol@example.com", domain.DispatchStatusFailed, "421", sentAt))
			},
			wantTotal: 3,
			wantLen:   1,
		},
		{
			name: "unknown run skips select",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dispatch_records`).
					WithArgs("run-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			},
		},
		{
			name: "count error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dispatch_records`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
		{
			name: "select error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dispatch_records`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
				mock.ExpectQuery(`SELECT id, run_id, email, status, error, sent_at`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewDispatchLogRepository(db)
			recs, total, err := repo.ListByRunID(ctx, "run-1", params)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantTotal, total)
			require.Len(t, recs, tt.wantLen)
			if tt.wantLen > 0 {
				require.Equal(t, "421", recs[0].Error)
				require.Equal(t, "carol@example.com", recs[0].Email)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS dispatch_records`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
