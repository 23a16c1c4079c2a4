package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"secretsanta/internal/domain"
	"secretsanta/internal/metrics"
)

// DrawOptions carries the non-port settings of a DrawService.
// Timeout bounds each send and each dispatch log write, not the whole run.
type DrawOptions struct {
	FromName string
	Timeout  time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

type drawService struct {
	registry    domain.ParticipantRegistry
	engine      domain.AssignmentEngine
	formatter   domain.NotificationFormatter
	dispatcher  domain.Dispatcher
	dispatchLog domain.DispatchLog

	fromName       string
	contextTimeout time.Duration
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

// NewDrawService wires the draw pipeline. dispatchLog may be nil.
func NewDrawService(
	registry domain.ParticipantRegistry,
	engine domain.AssignmentEngine,
	formatter domain.NotificationFormatter,
	dispatcher domain.Dispatcher,
	dispatchLog domain.DispatchLog,
	opts DrawOptions,
) domain.DrawService {
	if opts.FromName == "" {
		opts.FromName = domain.DefaultFromName
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &drawService{
		registry:       registry,
		engine:         engine,
		formatter:      formatter,
		dispatcher:     dispatcher,
		dispatchLog:    dispatchLog,
		fromName:       opts.FromName,
		contextTimeout: opts.Timeout,
		logger:         opts.Logger,
		metrics:        opts.Metrics,
	}
}

// Draw validates the request, computes the full cycle and then notifies every giver in
// cycle order. Nothing is sent unless validation and assignment both succeed. A failed
// dispatch stops the loop; participants already notified are not rolled back.
func (s *drawService) Draw(ctx context.Context, req domain.DrawRequest) (*domain.DrawResult, error) {
	event, err := ParseEvent(req.RawDate, req.RawBudget)
	if err != nil {
		s.metrics.ObserveDraw(metrics.OutcomeRejected)
		return nil, err
	}
	participants, err := s.registry.Collect(req.Slots)
	if err != nil {
		s.metrics.ObserveDraw(metrics.OutcomeRejected)
		return nil, err
	}
	assignments, err := s.engine.Assign(participants)
	if err != nil {
		s.metrics.ObserveDraw(metrics.OutcomeRejected)
		return nil, fmt.Errorf("assign participants: %w", err)
	}

	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)
	logger.InfoContext(ctx, "draw computed", "participants", len(assignments))

	// Once the cycle is drawn every giver must be mailed, so the caller going away
	// does not stop the loop. Each send gets its own timeout instead.
	ctx = context.WithoutCancel(ctx)

	notified := 0
	for _, a := range assignments {
		n := s.formatter.Format(a, event)
		if err := s.dispatch(ctx, a.Giver.Email, n); err != nil {
			s.record(ctx, logger, runID, a.Giver.Email, err)
			s.metrics.ObserveNotification(domain.DispatchStatusFailed)
			s.metrics.ObserveDraw(metrics.OutcomeFailed)
			logger.ErrorContext(ctx, "dispatch failed", "to", a.Giver.Email, "notified", notified, "err", err)
			return nil, &domain.DispatchError{RunID: runID, Email: a.Giver.Email, Notified: notified, Err: err}
		}
		s.record(ctx, logger, runID, a.Giver.Email, nil)
		s.metrics.ObserveNotification(domain.DispatchStatusSent)
		notified++
	}

	s.metrics.ObserveDraw(metrics.OutcomeCompleted)
	logger.InfoContext(ctx, "invitations sent", "notified", notified)
	return &domain.DrawResult{RunID: runID, Participants: len(assignments), Notified: notified}, nil
}

func (s *drawService) dispatch(ctx context.Context, to string, n domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.dispatcher.Dispatch(ctx, s.fromName, to, n.Subject, n.Body)
}

// record appends to the dispatch log. Log failures are reported but never abort a run,
// since the notification has already left.
func (s *drawService) record(ctx context.Context, logger *slog.Logger, runID, email string, sendErr error) {
	if s.dispatchLog == nil {
		return
	}
	rec := &domain.DispatchRecord{
		RunID:  runID,
		Email:  email,
		Status: domain.DispatchStatusSent,
		SentAt: time.Now().UTC(),
	}
	if sendErr != nil {
		rec.Status = domain.DispatchStatusFailed
		rec.Error = sendErr.Error()
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := s.dispatchLog.Create(ctx, rec); err != nil {
		logger.WarnContext(ctx, "record dispatch", "to", email, "err", err)
	}
}

func (s *drawService) ListNotifications(ctx context.Context, runID string, params domain.PaginationParams) ([]*domain.DispatchRecord, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if s.dispatchLog == nil {
		return nil, 0, domain.ErrNotFound
	}
	recs, total, err := s.dispatchLog.ListByRunID(ctx, runID, params)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("list dispatch records: %w", err)
	}
	if total == 0 {
		return nil, 0, domain.ErrNotFound
	}
	return recs, total, nil
}
