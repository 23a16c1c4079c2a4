package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"secretsanta/internal/domain"
	"secretsanta/internal/metrics"
	"secretsanta/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchCall struct {
	fromName, to, subject, body string
}

// fakeDispatcher records calls and fails on the configured attempt (1-based).
type fakeDispatcher struct {
	calls  []dispatchCall
	failOn int
	err    error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, fromName, to, subject, body string) error {
	f.calls = append(f.calls, dispatchCall{fromName, to, subject, body})
	if f.failOn > 0 && len(f.calls) == f.failOn {
		return f.err
	}
	return nil
}

type failingDispatchLog struct{}

func (failingDispatchLog) Create(ctx context.Context, rec *domain.DispatchRecord) error {
	return errors.New("db down")
}

func (failingDispatchLog) ListByRunID(ctx context.Context, runID string, params domain.PaginationParams) ([]*domain.DispatchRecord, int, error) {
	return nil, 0, errors.New("db down")
}

func threeSlots() []domain.ParticipantSlot {
	return []domain.ParticipantSlot{
		{Name: "Alice", Email: "alice@example.com", Gift: "Book"},
		{Name: "Bob", Email: "bob@example.com", Gift: "Socks"},
		{Name: "Carol", Email: "carol@example.com", Gift: "Tea"},
	}
}

func newTestDrawService(d domain.Dispatcher, log domain.DispatchLog, m *metrics.Metrics) domain.DrawService {
	return NewDrawService(
		NewParticipantRegistry(domain.DefaultMaxParticipants),
		NewAssignmentEngine(swapShuffler{swaps: [][2]int{{0, 1}, {1, 2}}}),
		NewNotificationFormatter(domain.DefaultCurrency),
		d,
		log,
		DrawOptions{
			Timeout: 5 * time.Second,
			Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			Metrics: m,
		},
	)
}

func TestDrawService_Draw(t *testing.T) {
	ctx := context.Background()
	d := &fakeDispatcher{}
	log := memory.NewDispatchLog()
	svc := newTestDrawService(d, log, nil)

	res, err := svc.Draw(ctx, domain.DrawRequest{Slots: threeSlots(), RawDate: "12/24/2024", RawBudget: "50"})
	require.NoError(t, err)
	require.NotNil(t, res)
	_, err = uuid.Parse(res.RunID)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Participants)
	assert.Equal(t, 3, res.Notified)

	// Shuffled order is [Bob, Carol, Alice]; each giver is mailed about their successor.
	require.Len(t, d.calls, 3)
	wantTo := []string{"bob@example.com", "carol@example.com", "alice@example.com"}
	wantRecipient := []string{"Carol", "Alice", "Bob"}
	for i, c := range d.calls {
		assert.Equal(t, domain.DefaultFromName, c.fromName)
		assert.Equal(t, wantTo[i], c.to)
		assert.Contains(t, c.body, "A gift idea for "+wantRecipient[i]+" is ")
		assert.Contains(t, c.body, "Date of gift exchange: Tuesday - 24 Dec, 2024\n")
	}
	assert.Equal(t, "Bob, you have drawn a name for Secret Santa!", d.calls[0].subject)

	recs, total, err := svc.ListNotifications(ctx, res.RunID, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	for i, rec := range recs {
		assert.Equal(t, wantTo[i], rec.Email)
		assert.Equal(t, domain.DispatchStatusSent, rec.Status)
	}
}

func TestDrawService_Draw_ValidationSendsNothing(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     domain.DrawRequest
		wantErr error
		wantMsg string
	}{
		{
			name:    "invalid date",
			req:     domain.DrawRequest{Slots: threeSlots(), RawDate: "02/30/2024", RawBudget: "10"},
			wantErr: domain.ErrInvalidDate,
		},
		{
			name:    "invalid budget",
			req:     domain.DrawRequest{Slots: threeSlots(), RawBudget: "lots"},
			wantErr: domain.ErrInvalidBudget,
		},
		{
			name: "partial slot",
			req: domain.DrawRequest{
				Slots:     append(threeSlots(), domain.ParticipantSlot{Name: "A", Gift: "x"}),
				RawBudget: "10",
			},
			wantErr: domain.ErrInvalidInput,
			wantMsg: "Email mandatory for entity no. 4",
		},
		{
			name:    "single participant",
			req:     domain.DrawRequest{Slots: threeSlots()[:1], RawBudget: "10"},
			wantErr: domain.ErrInsufficientParticipants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			m := metrics.New(reg)
			d := &fakeDispatcher{}
			svc := newTestDrawService(d, memory.NewDispatchLog(), m)

			res, err := svc.Draw(ctx, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				require.EqualError(t, err, tt.wantMsg)
			}
			assert.Nil(t, res)
			assert.Empty(t, d.calls)
		})
	}
}

func TestDrawService_Draw_DispatchFailureStopsLoop(t *testing.T) {
	ctx := context.Background()
	transportErr := errors.New("smtp: 421 service not available")
	d := &fakeDispatcher{failOn: 2, err: transportErr}
	log := memory.NewDispatchLog()
	svc := newTestDrawService(d, log, nil)

	res, err := svc.Draw(ctx, domain.DrawRequest{Slots: threeSlots(), RawBudget: "20"})
	require.Nil(t, res)
	require.ErrorIs(t, err, domain.ErrDispatch)
	require.ErrorIs(t, err, transportErr)

	var dErr *domain.DispatchError
	require.True(t, errors.As(err, &dErr))
	assert.Equal(t, "carol@example.com", dErr.Email)
	assert.Equal(t, 1, dErr.Notified)
	assert.Len(t, d.calls, 2, "no dispatch after the failing one")

	recs, total, err := svc.ListNotifications(ctx, dErr.RunID, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	assert.Equal(t, domain.DispatchStatusSent, recs[0].Status)
	assert.Equal(t, domain.DispatchStatusFailed, recs[1].Status)
	assert.Equal(t, transportErr.Error(), recs[1].Error)
}

func TestDrawService_Draw_DispatchLogFailureIgnored(t *testing.T) {
	d := &fakeDispatcher{}
	svc := newTestDrawService(d, failingDispatchLog{}, nil)

	res, err := svc.Draw(context.Background(), domain.DrawRequest{Slots: threeSlots(), RawBudget: "5"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Notified)
}

func TestDrawService_ListNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown run", func(t *testing.T) {
		svc := newTestDrawService(&fakeDispatcher{}, memory.NewDispatchLog(), nil)
		_, _, err := svc.ListNotifications(ctx, "missing", domain.PaginationParams{Page: 1, PageSize: 10})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no log configured", func(t *testing.T) {
		svc := newTestDrawService(&fakeDispatcher{}, nil, nil)
		_, _, err := svc.ListNotifications(ctx, "run", domain.PaginationParams{Page: 1, PageSize: 10})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("log error wrapped", func(t *testing.T) {
		svc := newTestDrawService(&fakeDispatcher{}, failingDispatchLog{}, nil)
		_, _, err := svc.ListNotifications(ctx, "run", domain.PaginationParams{Page: 1, PageSize: 10})
		require.Error(t, err)
		require.NotErrorIs(t, err, domain.ErrNotFound)
	})
}

// cancellingDispatcher cancels the caller's context after its first send and fails
// any send whose context is already done.
type cancellingDispatcher struct {
	cancel context.CancelFunc
	sent   []string
}

func (c *cancellingDispatcher) Dispatch(ctx context.Context, fromName, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sent = append(c.sent, to)
	if len(c.sent) == 1 {
		c.cancel()
	}
	return nil
}

type ctxCheckingDispatchLog struct {
	*memory.DispatchLog
}

func (l ctxCheckingDispatchLog) Create(ctx context.Context, rec *domain.DispatchRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.DispatchLog.Create(ctx, rec)
}

func TestDrawService_Draw_CallerCancellationDoesNotStopDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := &cancellingDispatcher{cancel: cancel}
	log := ctxCheckingDispatchLog{memory.NewDispatchLog()}
	svc := newTestDrawService(d, log, nil)

	res, err := svc.Draw(ctx, domain.DrawRequest{Slots: threeSlots(), RawBudget: "10"})
	require.NoError(t, err)
	require.Error(t, ctx.Err())
	assert.Equal(t, 3, res.Notified)
	assert.Len(t, d.sent, 3)

	_, total, err := svc.ListNotifications(context.Background(), res.RunID, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
