package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/repository"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/segyhp/rental-engine/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReservationCache is a read-through cache of reservation views
type ReservationCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.ReservationResponse, error)
	Set(ctx context.Context, reservation *domain.ReservationResponse) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReservationService struct {
	UserRepo        repository.UserRepository
	BookRepo        repository.BookRepository
	Stock           repository.StockUpdater
	ReservationRepo repository.ReservationRepository
	Tx              repository.Transactor
	Cache           ReservationCache // optional

	logger *zap.Logger
	now    func() time.Time
}

func NewReservationService(
	userRepo repository.UserRepository,
	books repository.BookStore,
	reservationRepo repository.ReservationRepository,
	tx repository.Transactor,
	cache ReservationCache,
	logger *zap.Logger,
) *ReservationService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ReservationService{
		UserRepo:        userRepo,
		BookRepo:        books,
		Stock:           books,
		ReservationRepo: reservationRepo,
		Tx:              tx,
		Cache:           cache,
		logger:          logger,
		now:             time.Now,
	}
}

// CreateReservation rents one copy of a book to a user starting on startDate
func (s *ReservationService) CreateReservation(ctx context.Context, userID, bookExternalID int64, rentalDays int, startDate time.Time) (*domain.ReservationResponse, error) {
	s.logger.Info("creating reservation",
		zap.Int64("user_id", userID),
		zap.Int64("book_external_id", bookExternalID),
		zap.Int("rental_days", rentalDays),
	)

	// 1. Validate that the user exists
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapUserNotFound(userID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	// 2. Validate that the book exists and has a free copy
	book, err := s.BookRepo.GetByExternalID(ctx, bookExternalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapBookNotFound(bookExternalID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if !book.IsAvailable() {
		return nil, customError.WrapBookUnavailable(book.Title)
	}

	// 3. Price the rental; the daily rate is frozen at today's book price
	start := utils.TruncateToDay(startDate)
	totalFee, err := utils.CalculateBaseFee(decimal.NewNullDecimal(book.Price), rentalDays)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		ID:                 uuid.New(),
		UserID:             user.ID,
		BookExternalID:     book.ExternalID,
		RentalDays:         rentalDays,
		StartDate:          start,
		ExpectedReturnDate: utils.AddDays(start, rentalDays),
		DailyRate:          book.Price,
		TotalFee:           totalFee,
		LateFee:            decimal.Zero,
		Status:             domain.ReservationStatusActive,
		CreatedAt:          s.now(),
		UserName:           user.Name,
		BookTitle:          book.Title,
	}

	// 4. Save the reservation and take the copy out of stock together
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ReservationRepo.Create(ctx, reservation); err != nil {
			return err
		}
		return s.Stock.UpdateStock(ctx, book.ExternalID, book.AvailableQuantity-1)
	})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("total_fee", totalFee.StringFixed(2)),
	)

	return domain.NewReservationResponse(reservation), nil
}

// ReturnBook closes an active reservation, charging a late fee when returnDate
// falls after the expected return date
func (s *ReservationService) ReturnBook(ctx context.Context, reservationID uuid.UUID, returnDate time.Time) (*domain.ReservationResponse, error) {
	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if !reservation.IsActive() {
		return nil, customError.WrapAlreadyReturned(reservationID.String())
	}

	returned := utils.TruncateToDay(returnDate)
	reservation.ActualReturnDate = &returned

	if utils.IsAfterDay(returned, reservation.ExpectedReturnDate) {
		daysLate := utils.DaysBetween(reservation.ExpectedReturnDate, returned)
		lateFee, err := utils.CalculateLateFee(decimal.NewNullDecimal(reservation.DailyRate), daysLate)
		if err != nil {
			return nil, err
		}

		reservation.LateFee = lateFee
		reservation.TotalFee = reservation.TotalFee.Add(lateFee)

		s.logger.Info("book returned late",
			zap.String("reservation_id", reservationID.String()),
			zap.Int("days_late", daysLate),
			zap.String("late_fee", lateFee.StringFixed(2)),
		)
	} else {
		s.logger.Info("book returned on time", zap.String("reservation_id", reservationID.String()))
	}

	reservation.Status = domain.ReservationStatusReturned

	// Persist the return and put the copy back in stock together
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ReservationRepo.Update(ctx, reservation); err != nil {
			return err
		}

		book, err := s.BookRepo.GetByExternalID(ctx, reservation.BookExternalID)
		if err != nil {
			return err
		}
		return s.Stock.UpdateStock(ctx, book.ExternalID, book.AvailableQuantity+1)
	})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.cacheInvalidate(ctx, reservationID)

	return domain.NewReservationResponse(reservation), nil
}

// GetReservationByID returns one reservation, served from cache when possible
func (s *ReservationService) GetReservationByID(ctx context.Context, reservationID uuid.UUID) (*domain.ReservationResponse, error) {
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, reservationID)
		if err != nil {
			s.logger.Warn("reservation cache read failed", zap.Error(customError.WrapCacheError(err)))
		} else if cached != nil {
			return cached, nil
		}
	}

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	response := domain.NewReservationResponse(reservation)
	s.cacheSet(ctx, response)

	return response, nil
}

func (s *ReservationService) GetAllReservations(ctx context.Context) ([]*domain.ReservationResponse, error) {
	return s.list(s.ReservationRepo.List(ctx))
}

func (s *ReservationService) GetReservationsByUserID(ctx context.Context, userID int64) ([]*domain.ReservationResponse, error) {
	return s.list(s.ReservationRepo.ListByUserID(ctx, userID))
}

func (s *ReservationService) GetReservationsByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.ReservationResponse, error) {
	return s.list(s.ReservationRepo.ListByStatus(ctx, status))
}

func (s *ReservationService) GetActiveReservations(ctx context.Context) ([]*domain.ReservationResponse, error) {
	return s.GetReservationsByStatus(ctx, domain.ReservationStatusActive)
}

// GetOverdueReservations lists active reservations past their expected return date
func (s *ReservationService) GetOverdueReservations(ctx context.Context) ([]*domain.ReservationResponse, error) {
	return s.list(s.ReservationRepo.ListOverdue(ctx))
}

func (s *ReservationService) getReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	reservation, err := s.ReservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapReservationNotFound(reservationID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return reservation, nil
}

func (s *ReservationService) list(reservations []*domain.Reservation, err error) ([]*domain.ReservationResponse, error) {
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return domain.NewReservationResponses(reservations), nil
}

func (s *ReservationService) cacheSet(ctx context.Context, response *domain.ReservationResponse) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, response); err != nil {
		s.logger.Warn("reservation cache write failed",
			zap.String("reservation_id", response.ID.String()),
			zap.Error(customError.WrapCacheError(err)),
		)
	}
}

func (s *ReservationService) cacheInvalidate(ctx context.Context, reservationID uuid.UUID) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, reservationID); err != nil {
		s.logger.Warn("reservation cache invalidation failed",
			zap.String("reservation_id", reservationID.String()),
			zap.Error(customError.WrapCacheError(err)),
		)
	}
}
