package repository

import (
	"context"
	"fmt"

	"github.com/segyhp/rental-engine/internal/domain"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const dialectPostgres = "postgres"

type reservationRepository struct {
	db *sqlx.DB
}

func NewReservationRepository(db *sqlx.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id, book_external_id, rental_days, start_date, expected_return_date,
			actual_return_date, daily_rate, total_fee, late_fee, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		reservation.ID,
		reservation.UserID,
		reservation.BookExternalID,
		reservation.RentalDays,
		reservation.StartDate,
		reservation.ExpectedReturnDate,
		reservation.ActualReturnDate,
		reservation.DailyRate,
		reservation.TotalFee,
		reservation.LateFee,
		reservation.Status,
		reservation.CreatedAt,
	)

	return err
}

func (r *reservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		UPDATE reservations
		SET actual_return_date = $2, total_fee = $3, late_fee = $4, status = $5
		WHERE id = $1
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		reservation.ID,
		reservation.ActualReturnDate,
		reservation.TotalFee,
		reservation.LateFee,
		reservation.Status,
	)

	return err
}

func (r *reservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	query, args, err := selectReservations().Where(goqu.I("r.id").Eq(id.String())).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build reservation query: %w", err)
	}

	var reservation domain.Reservation
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &reservation, query, args...); err != nil {
		return nil, err
	}

	return &reservation, nil
}

func (r *reservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	return r.selectAll(ctx, selectReservations())
}

func (r *reservationRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	return r.selectAll(ctx, selectReservations().Where(goqu.I("r.user_id").Eq(userID)))
}

func (r *reservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error) {
	return r.selectAll(ctx, selectReservations().Where(goqu.I("r.status").Eq(string(status))))
}

func (r *reservationRepository) ListOverdue(ctx context.Context) ([]*domain.Reservation, error) {
	return r.selectAll(ctx, overdueReservations())
}

func (r *reservationRepository) selectAll(ctx context.Context, ds *goqu.SelectDataset) ([]*domain.Reservation, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build reservation query: %w", err)
	}

	reservations := []*domain.Reservation{}
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &reservations, query, args...); err != nil {
		return nil, err
	}

	return reservations, nil
}

// selectReservations joins each reservation with its user's name and book's title
func selectReservations() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(goqu.T("reservations").As("r")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("r.user_id")))).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.external_id").Eq(goqu.I("r.book_external_id")))).
		Select(
			goqu.I("r.id"),
			goqu.I("r.user_id"),
			goqu.I("r.book_external_id"),
			goqu.I("r.rental_days"),
			goqu.I("r.start_date"),
			goqu.I("r.expected_return_date"),
			goqu.I("r.actual_return_date"),
			goqu.I("r.daily_rate"),
			goqu.I("r.total_fee"),
			goqu.I("r.late_fee"),
			goqu.I("r.status"),
			goqu.I("r.created_at"),
			goqu.I("u.name").As("user_name"),
			goqu.I("b.title").As("book_title"),
		).
		Order(goqu.I("r.created_at").Asc()).
		Prepared(true)
}

// overdueReservations compares against the database's CURRENT_DATE at query time
func overdueReservations() *goqu.SelectDataset {
	return selectReservations().Where(
		goqu.I("r.status").Eq(string(domain.ReservationStatusActive)),
		goqu.I("r.expected_return_date").Lt(goqu.L("CURRENT_DATE")),
	)
}
