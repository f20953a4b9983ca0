/*
scheduler.go - Automated monthly report scheduler

PURPOSE:
  Periodically checks whether a new calendar month has begun and, if so,
  builds the summary report for the month that just ended and hands it to
  the configured Notifier (email dispatch, webhook, log).

DESIGN:
  - Background goroutine with a configurable check interval
  - At most one delivery per month: the last delivered month is remembered
    for the lifetime of the process, and redundant checks are skipped
  - Report building is a pure computation over a store snapshot, so a
    failed delivery is safe to retry on the next tick
  - Stop cancels the delivery context and waits for the worker to exit;
    the lastSent mutex is never held across that wait

USAGE:
  scheduler := NewReportScheduler(store, cfg, notifier, logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/keystone/rent-engine/engine"
	"github.com/keystone/rent-engine/reports"
	"github.com/keystone/rent-engine/store"
)

// ReportScheduler delivers the monthly summary report once per month.
type ReportScheduler struct {
	Store         store.Store
	Config        reports.Config
	Notifier      reports.Notifier
	Logger        *logrus.Logger
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// mu guards lastSent only. Stop must not take it: a worker blocked in
	// Deliver still needs it to finish, and Stop waits for that worker.
	mu       sync.Mutex
	lastSent engine.RentalPeriod
}

// NewReportScheduler creates a scheduler with a 1 hour check interval.
func NewReportScheduler(st store.Store, cfg reports.Config, notifier reports.Notifier, logger *logrus.Logger) *ReportScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &ReportScheduler{
		Store:         st,
		Config:        cfg,
		Notifier:      notifier,
		Logger:        logger,
		CheckInterval: time.Hour,
		Enabled:       true,
		stop:          make(chan struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start begins the scheduler.
func (rs *ReportScheduler) Start() {
	if !rs.Enabled {
		rs.Logger.Info("report scheduler disabled, not starting")
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.wg.Add(1)
	go rs.run()

	rs.Logger.WithField("check_interval", rs.CheckInterval.String()).Info("report scheduler started")
}

// Stop cancels any in-flight delivery, stops the ticker, and waits for the
// worker to exit.
func (rs *ReportScheduler) Stop() {
	if rs.ticker == nil {
		return
	}

	rs.ticker.Stop()
	rs.cancel()
	close(rs.stop)
	rs.wg.Wait()
	rs.Logger.Info("report scheduler stopped")
}

func (rs *ReportScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.checkAndDeliver(rs.ctx, time.Now().UTC())

	for {
		select {
		case <-rs.ticker.C:
			rs.checkAndDeliver(rs.ctx, time.Now().UTC())
		case <-rs.stop:
			return
		}
	}
}

// checkAndDeliver builds and delivers the report for the month preceding
// now, unless that month has already been delivered.
func (rs *ReportScheduler) checkAndDeliver(ctx context.Context, now time.Time) {
	reportMonth := engine.PeriodOf(engine.DateOf(now)).Prev()

	rs.mu.Lock()
	alreadySent := rs.lastSent == reportMonth
	rs.mu.Unlock()
	if alreadySent {
		return
	}

	leases, err := rs.Store.ListLeases(ctx)
	if err != nil {
		rs.Logger.WithError(err).Error("report scheduler: failed to list leases")
		return
	}
	units, err := rs.Store.ListUnits(ctx)
	if err != nil {
		rs.Logger.WithError(err).Error("report scheduler: failed to list units")
		return
	}
	payments, err := rs.Store.ListPayments(ctx)
	if err != nil {
		rs.Logger.WithError(err).Error("report scheduler: failed to list payments")
		return
	}

	report := reports.BuildMonthlyReport(leases, units, payments, reportMonth, rs.Config)
	if err := rs.Notifier.Deliver(ctx, report); err != nil {
		// Leave lastSent untouched; the next tick retries.
		rs.Logger.WithError(err).WithField("month", reportMonth.String()).Error("report delivery failed")
		return
	}

	rs.mu.Lock()
	rs.lastSent = reportMonth
	rs.mu.Unlock()

	rs.Logger.WithFields(logrus.Fields{
		"month":            reportMonth.String(),
		"delinquent_units": len(report.Delinquent),
	}).Info("monthly report delivered")
}

// RunNow triggers an immediate check (for testing/admin).
func (rs *ReportScheduler) RunNow() {
	rs.checkAndDeliver(rs.ctx, time.Now().UTC())
}
