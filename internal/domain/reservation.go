package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationStatus is either ReservationStatusActive or ReservationStatusReturned
type ReservationStatus string

const (
	ReservationStatusActive   ReservationStatus = "ACTIVE"
	ReservationStatusReturned ReservationStatus = "RETURNED"
)

// ParseReservationStatus accepts only the two known statuses
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch status := ReservationStatus(s); status {
	case ReservationStatusActive, ReservationStatusReturned:
		return status, nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
}

func (s ReservationStatus) String() string {
	return string(s)
}

// Reservation represents one rental of one book copy by one user.
//
// ExpectedReturnDate is always StartDate + RentalDays. ActualReturnDate stays
// nil and LateFee zero while Status is ACTIVE; both are set once, together
// with Status RETURNED, when the book comes back.
type Reservation struct {
	ID                 uuid.UUID         `json:"id" db:"id"`
	UserID             int64             `json:"user_id" db:"user_id"`
	BookExternalID     int64             `json:"book_external_id" db:"book_external_id"`
	RentalDays         int               `json:"rental_days" db:"rental_days"`
	StartDate          time.Time         `json:"start_date" db:"start_date"`
	ExpectedReturnDate time.Time         `json:"expected_return_date" db:"expected_return_date"`
	ActualReturnDate   *time.Time        `json:"actual_return_date,omitempty" db:"actual_return_date"`
	DailyRate          decimal.Decimal   `json:"daily_rate" db:"daily_rate"`
	TotalFee           decimal.Decimal   `json:"total_fee" db:"total_fee"`
	LateFee            decimal.Decimal   `json:"late_fee" db:"late_fee"`
	Status             ReservationStatus `json:"status" db:"status"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`

	// Read-side joins, not persisted on the reservation row
	UserName  string `json:"user_name" db:"user_name"`
	BookTitle string `json:"book_title" db:"book_title"`
}

// IsActive reports whether the book is still out
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}

// DTOs for requests and responses

type CreateReservationRequest struct {
	UserID         int64  `json:"user_id" validate:"required,gt=0"`
	BookExternalID int64  `json:"book_external_id" validate:"required,gt=0"`
	RentalDays     int    `json:"rental_days" validate:"required,gt=0"`
	StartDate      string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

type ReturnBookRequest struct {
	ReturnDate string `json:"return_date" validate:"omitempty,datetime=2006-01-02"`
}

type ReservationResponse struct {
	ID                 uuid.UUID         `json:"id"`
	UserID             int64             `json:"user_id"`
	UserName           string            `json:"user_name"`
	BookExternalID     int64             `json:"book_external_id"`
	BookTitle          string            `json:"book_title"`
	RentalDays         int               `json:"rental_days"`
	StartDate          time.Time         `json:"start_date"`
	ExpectedReturnDate time.Time         `json:"expected_return_date"`
	ActualReturnDate   *time.Time        `json:"actual_return_date,omitempty"`
	DailyRate          decimal.Decimal   `json:"daily_rate"`
	TotalFee           decimal.Decimal   `json:"total_fee"`
	LateFee            decimal.Decimal   `json:"late_fee"`
	Status             ReservationStatus `json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
}

// NewReservationResponse maps a stored reservation to its response view
func NewReservationResponse(r *Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		UserName:           r.UserName,
		BookExternalID:     r.BookExternalID,
		BookTitle:          r.BookTitle,
		RentalDays:         r.RentalDays,
		StartDate:          r.StartDate,
		ExpectedReturnDate: r.ExpectedReturnDate,
		ActualReturnDate:   r.ActualReturnDate,
		DailyRate:          r.DailyRate,
		TotalFee:           r.TotalFee,
		LateFee:            r.LateFee,
		Status:             r.Status,
		CreatedAt:          r.CreatedAt,
	}
}

// NewReservationResponses maps a list, never returning nil
func NewReservationResponses(reservations []*Reservation) []*ReservationResponse {
	responses := make([]*ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		responses = append(responses, NewReservationResponse(r))
	}
	return responses
}
