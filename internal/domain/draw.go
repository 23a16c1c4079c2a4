package domain

import "context"

// DrawRequest is everything an organizer submits for one draw.
type DrawRequest struct {
	Slots     []ParticipantSlot
	RawDate   string
	RawBudget string
}

// DrawResult summarises a completed draw. It deliberately omits who drew whom.
// swagger:model DrawResult
type DrawResult struct {
	RunID        string `json:"run_id"`
	Participants int    `json:"participants"`
	Notified     int    `json:"notified"`
}

// DrawService runs a full draw: validation, assignment and one notification per participant.
type DrawService interface {
	Draw(ctx context.Context, req DrawRequest) (*DrawResult, error)
	ListNotifications(ctx context.Context, runID string, params PaginationParams) ([]*DispatchRecord, int, error)
}
