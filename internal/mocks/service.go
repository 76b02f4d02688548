package mocks

import (
	"context"
	"time"

	"github.com/segyhp/rental-engine/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) CreateReservation(ctx context.Context, userID, bookExternalID int64, rentalDays int, startDate time.Time) (*domain.ReservationResponse, error) {
	args := m.Called(ctx, userID, bookExternalID, rentalDays, startDate)
	return response(args)
}

func (m *MockReservationService) ReturnBook(ctx context.Context, reservationID uuid.UUID, returnDate time.Time) (*domain.ReservationResponse, error) {
	args := m.Called(ctx, reservationID, returnDate)
	return response(args)
}

func (m *MockReservationService) GetReservationByID(ctx context.Context, reservationID uuid.UUID) (*domain.ReservationResponse, error) {
	args := m.Called(ctx, reservationID)
	return response(args)
}

func (m *MockReservationService) GetAllReservations(ctx context.Context) ([]*domain.ReservationResponse, error) {
	args := m.Called(ctx)
	return responses(args)
}

func (m *MockReservationService) GetReservationsByUserID(ctx context.Context, userID int64) ([]*domain.ReservationResponse, error) {
	args := m.Called(ctx, userID)
	return responses(args)
}

func (m *MockReservationService) GetReservationsByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.ReservationResponse, error) {
	args := m.Called(ctx, status)
	return responses(args)
}

func (m *MockReservationService) GetActiveReservations(ctx context.Context) ([]*domain.ReservationResponse, error) {
	args := m.Called(ctx)
	return responses(args)
}

func (m *MockReservationService) GetOverdueReservations(ctx context.Context) ([]*domain.ReservationResponse, error) {
	args := m.Called(ctx)
	return responses(args)
}

func response(args mock.Arguments) (*domain.ReservationResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationResponse), args.Error(1)
}

func responses(args mock.Arguments) ([]*domain.ReservationResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ReservationResponse), args.Error(1)
}
