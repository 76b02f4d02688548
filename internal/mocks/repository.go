package mocks

import (
	"context"

	"github.com/segyhp/rental-engine/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockBookStore struct {
	mock.Mock
}

func (m *MockBookStore) GetByExternalID(ctx context.Context, externalID int64) (*domain.Book, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookStore) UpdateStock(ctx context.Context, externalID int64, newQuantity int) error {
	args := m.Called(ctx, externalID, newQuantity)
	return args.Error(0)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	args := m.Called(ctx)
	return reservations(args)
}

func (m *MockReservationRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, userID)
	return reservations(args)
}

func (m *MockReservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error) {
	args := m.Called(ctx, status)
	return reservations(args)
}

func (m *MockReservationRepository) ListOverdue(ctx context.Context) ([]*domain.Reservation, error) {
	args := m.Called(ctx)
	return reservations(args)
}

func reservations(args mock.Arguments) ([]*domain.Reservation, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

// MockTransactor runs fn directly and records each transaction it opens
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

type MockReservationCache struct {
	mock.Mock
}

func (m *MockReservationCache) Get(ctx context.Context, id uuid.UUID) (*domain.ReservationResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationResponse), args.Error(1)
}

func (m *MockReservationCache) Set(ctx context.Context, reservation *domain.ReservationResponse) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationCache) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
