// Package memory provides an in-process DispatchLog for runs without a database.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"secretsanta/internal/domain"
)

// DefaultRetention is how long a run's records stay listable.
const DefaultRetention = 24 * time.Hour

var _ domain.DispatchLog = (*DispatchLog)(nil)

// DispatchLog keeps each run's dispatch records for a bounded retention period.
// Runs expire as a whole, so memory stays proportional to recent traffic.
type DispatchLog struct {
	mu     sync.Mutex
	nextID int
	runs   *cache.Cache
}

// NewDispatchLog returns an empty log with DefaultRetention.
func NewDispatchLog() *DispatchLog {
	return NewDispatchLogWithRetention(DefaultRetention)
}

// NewDispatchLogWithRetention returns an empty log whose runs expire retention after
// their first record. A non-positive retention uses DefaultRetention.
func NewDispatchLogWithRetention(retention time.Duration) *DispatchLog {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &DispatchLog{nextID: 1, runs: cache.New(retention, retention)}
}

func (l *DispatchLog) Create(ctx context.Context, rec *domain.DispatchRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec.ID = strconv.Itoa(l.nextID)
	l.nextID++
	cp := *rec

	if v, ok := l.runs.Get(rec.RunID); ok {
		run := v.(*[]*domain.DispatchRecord)
		*run = append(*run, &cp)
		return nil
	}
	run := []*domain.DispatchRecord{&cp}
	l.runs.Set(rec.RunID, &run, cache.DefaultExpiration)
	return nil
}

func (l *DispatchLog) ListByRunID(ctx context.Context, runID string, params domain.PaginationParams) ([]*domain.DispatchRecord, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var all []*domain.DispatchRecord
	if v, ok := l.runs.Get(runID); ok {
		all = *v.(*[]*domain.DispatchRecord)
	}
	total := len(all)

	start, end := params.Bounds(total)
	out := make([]*domain.DispatchRecord, 0, end-start)
	for _, rec := range all[start:end] {
		cp := *rec
		out = append(out, &cp)
	}
	return out, total, nil
}
