package domain

import (
	"context"
	"time"
)

// Dispatch statuses recorded in the dispatch log.
const (
	DispatchStatusSent   = "sent"
	DispatchStatusFailed = "failed"
)

// DispatchRecord notes that a participant of a run was (or failed to be) notified.
// It never carries the drawn recipient.
// swagger:model DispatchRecord
type DispatchRecord struct {
	ID     string    `json:"id"`
	RunID  string    `json:"run_id"`
	Email  string    `json:"email"`
	Status string    `json:"status"`
	Error  string    `json:"error,omitempty"`
	SentAt time.Time `json:"sent_at"`
}

// DispatchLog defines storage operations for dispatch records.
type DispatchLog interface {
	Create(ctx context.Context, rec *DispatchRecord) error
	ListByRunID(ctx context.Context, runID string, params PaginationParams) ([]*DispatchRecord, int, error)
}
