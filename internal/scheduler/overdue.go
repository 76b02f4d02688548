package scheduler

import (
	"context"
	"time"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/pkg/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OverdueLister is the slice of the reservation service the report reads from
type OverdueLister interface {
	GetOverdueReservations(ctx context.Context) ([]*domain.ReservationResponse, error)
}

type OverdueEntry struct {
	ReservationID  uuid.UUID
	UserID         int64
	BookTitle      string
	DaysOverdue    int
	AccruedLateFee decimal.Decimal
}

type OverdueReport struct {
	GeneratedAt         time.Time
	Entries             []OverdueEntry
	TotalAccruedLateFee decimal.Decimal
}

// OverdueReporter summarises overdue reservations and the late fees they
// would be charged if returned today
type OverdueReporter struct {
	reservations OverdueLister
	logger       *zap.Logger
	now          func() time.Time
}

func NewOverdueReporter(reservations OverdueLister, logger *zap.Logger) *OverdueReporter {
	return &OverdueReporter{
		reservations: reservations,
		logger:       logger,
		now:          time.Now,
	}
}

func (r *OverdueReporter) Run(ctx context.Context) (*OverdueReport, error) {
	overdue, err := r.reservations.GetOverdueReservations(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	report := &OverdueReport{
		GeneratedAt:         now,
		Entries:             make([]OverdueEntry, 0, len(overdue)),
		TotalAccruedLateFee: decimal.Zero,
	}

	for _, reservation := range overdue {
		daysOverdue := utils.DaysBetween(reservation.ExpectedReturnDate, now)
		lateFee, err := utils.CalculateLateFee(decimal.NewNullDecimal(reservation.DailyRate), daysOverdue)
		if err != nil {
			return nil, err
		}

		report.Entries = append(report.Entries, OverdueEntry{
			ReservationID:  reservation.ID,
			UserID:         reservation.UserID,
			BookTitle:      reservation.BookTitle,
			DaysOverdue:    daysOverdue,
			AccruedLateFee: lateFee,
		})
		report.TotalAccruedLateFee = report.TotalAccruedLateFee.Add(lateFee)

		r.logger.Info("overdue reservation",
			zap.String("reservation_id", reservation.ID.String()),
			zap.Int64("user_id", reservation.UserID),
			zap.String("book_title", reservation.BookTitle),
			zap.Int("days_overdue", daysOverdue),
			zap.String("accrued_late_fee", lateFee.StringFixed(2)),
		)
	}

	r.logger.Info("overdue report complete",
		zap.Int("overdue_count", len(report.Entries)),
		zap.String("total_accrued_late_fee", report.TotalAccruedLateFee.StringFixed(2)),
	)

	return report, nil
}

// Schedule registers the report on c; each run is bounded by timeout
func (r *OverdueReporter) Schedule(c *cron.Cron, spec string, timeout time.Duration) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		r.logger.Info("running overdue report job")
		if _, err := r.Run(ctx); err != nil {
			r.logger.Error("overdue report job failed", zap.Error(err))
		}
	})
}
