package reports

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Notifier delivers a finished monthly report. Transport (SMTP, webhook,
// queue) lives behind this interface; the report pipeline only builds.
type Notifier interface {
	Deliver(ctx context.Context, report MonthlyReport) error
}

// LogNotifier writes report summaries to the structured log. Used in
// development and as the fallback when no transport is configured.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n *LogNotifier) Deliver(_ context.Context, report MonthlyReport) error {
	n.Logger.WithFields(logrus.Fields{
		"month":            report.Month.String(),
		"ytd_collected":    report.YTDRentCollected.String(),
		"rent_this_month":  report.RentThisMonth.String(),
		"new_leases":       report.NewLeases,
		"ended_leases":     report.EndedLeases,
		"occupancy_rate":   report.OccupancyRate().String(),
		"delinquent_units": len(report.Delinquent),
		"total_overdue":    report.TotalOverdue.String(),
	}).Info("monthly report")
	return nil
}
