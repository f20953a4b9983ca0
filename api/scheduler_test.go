/*
scheduler_test.go - Unit tests for the report scheduler

Tests for:
- Duplicate-send suppression within a month
- Retry after a failed delivery
- Stop returning promptly while a delivery is in flight
*/
package api

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone/rent-engine/engine"
	"github.com/keystone/rent-engine/reports"
	"github.com/keystone/rent-engine/store/memory"
)

// captureNotifier records delivered months and can be told to fail.
type captureNotifier struct {
	mu   sync.Mutex
	fail bool
	sent []engine.RentalPeriod
}

func (n *captureNotifier) Deliver(_ context.Context, report reports.MonthlyReport) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("smtp unavailable")
	}
	n.sent = append(n.sent, report.Month)
	return nil
}

func (n *captureNotifier) setFail(fail bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fail = fail
}

func (n *captureNotifier) delivered() []engine.RentalPeriod {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]engine.RentalPeriod(nil), n.sent...)
}

func newTestScheduler(notifier reports.Notifier) *ReportScheduler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewReportScheduler(memory.New(), reports.DefaultConfig(), notifier, logger)
}

func TestReportScheduler_OneDeliveryPerMonth(t *testing.T) {
	// GIVEN: A scheduler that has already delivered June's report
	notifier := &captureNotifier{}
	rs := newTestScheduler(notifier)
	ctx := context.Background()

	july10 := time.Date(2025, time.July, 10, 9, 0, 0, 0, time.UTC)
	rs.checkAndDeliver(ctx, july10)

	// WHEN: Further checks land in the same calendar month
	rs.checkAndDeliver(ctx, july10.Add(time.Hour))
	rs.checkAndDeliver(ctx, time.Date(2025, time.July, 31, 23, 0, 0, 0, time.UTC))

	// THEN: June was delivered exactly once
	require.Len(t, notifier.delivered(), 1)
	assert.Equal(t, engine.MustParseRentalPeriod("2025-06"), notifier.delivered()[0])

	// And the first check of August delivers July
	rs.checkAndDeliver(ctx, time.Date(2025, time.August, 1, 1, 0, 0, 0, time.UTC))
	require.Len(t, notifier.delivered(), 2)
	assert.Equal(t, engine.MustParseRentalPeriod("2025-07"), notifier.delivered()[1])
}

func TestReportScheduler_FailedDeliveryRetriesNextCheck(t *testing.T) {
	// GIVEN: A notifier that fails its first delivery
	notifier := &captureNotifier{}
	notifier.setFail(true)
	rs := newTestScheduler(notifier)
	ctx := context.Background()

	now := time.Date(2025, time.July, 1, 8, 0, 0, 0, time.UTC)
	rs.checkAndDeliver(ctx, now)
	assert.Empty(t, notifier.delivered())

	// WHEN: The transport recovers before the next check
	notifier.setFail(false)
	rs.checkAndDeliver(ctx, now.Add(time.Hour))

	// THEN: The month is delivered on the retry, and only once after that
	require.Len(t, notifier.delivered(), 1)
	assert.Equal(t, engine.MustParseRentalPeriod("2025-06"), notifier.delivered()[0])

	rs.checkAndDeliver(ctx, now.Add(2*time.Hour))
	assert.Len(t, notifier.delivered(), 1)
}

// slowNotifier signals when a delivery begins and then blocks for a while,
// so tests can stop the scheduler mid-delivery.
type slowNotifier struct {
	began chan struct{}
	once  sync.Once
}

func (n *slowNotifier) Deliver(ctx context.Context, _ reports.MonthlyReport) error {
	n.once.Do(func() { close(n.began) })
	select {
	case <-time.After(300 * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestReportScheduler_StopReturnsWhileDeliveryInFlight(t *testing.T) {
	// GIVEN: A started scheduler whose first delivery is still running
	notifier := &slowNotifier{began: make(chan struct{})}
	rs := newTestScheduler(notifier)
	rs.CheckInterval = 10 * time.Millisecond
	rs.Start()

	select {
	case <-notifier.began:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery never started")
	}

	// WHEN: Stopping mid-delivery
	done := make(chan struct{})
	go func() {
		rs.Stop()
		close(done)
	}()

	// THEN: Stop returns promptly instead of waiting on the worker's lock
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return while a delivery was in flight")
	}
}
