package repository

import (
	"context"

	"github.com/segyhp/rental-engine/internal/domain"

	"github.com/google/uuid"
)

// UserRepository defines lookups on library users
type UserRepository interface {
	// GetByID retrieves a user, sql.ErrNoRows if absent
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// BookRepository defines lookups on the book catalogue
type BookRepository interface {
	// GetByExternalID retrieves a book, sql.ErrNoRows if absent
	GetByExternalID(ctx context.Context, externalID int64) (*domain.Book, error)
}

// StockUpdater adjusts how many copies of a book can still be rented
type StockUpdater interface {
	// UpdateStock sets the available-copy count of a book
	UpdateStock(ctx context.Context, externalID int64, newQuantity int) error
}

// BookStore is a BookRepository that can also update stock
type BookStore interface {
	BookRepository
	StockUpdater
}

// ReservationRepository defines the interface for reservation data operations
type ReservationRepository interface {
	// Create inserts a new reservation
	Create(ctx context.Context, reservation *domain.Reservation) error

	// Update persists the mutable return fields of a reservation
	Update(ctx context.Context, reservation *domain.Reservation) error

	// GetByID retrieves a reservation, sql.ErrNoRows if absent
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)

	// List retrieves every reservation
	List(ctx context.Context) ([]*domain.Reservation, error)

	// ListByUserID retrieves the reservations of one user
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Reservation, error)

	// ListByStatus retrieves reservations in the given status
	ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error)

	// ListOverdue retrieves active reservations whose expected return date is before today
	ListOverdue(ctx context.Context) ([]*domain.Reservation, error)
}

// Transactor runs fn inside one database transaction. Repository calls made
// with the ctx passed to fn join that transaction; fn returning an error rolls
// it back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
