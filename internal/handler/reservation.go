package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/segyhp/rental-engine/internal/domain"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/segyhp/rental-engine/pkg/response"
	"github.com/segyhp/rental-engine/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReservationService is what the HTTP layer needs from the reservation core
type ReservationService interface {
	CreateReservation(ctx context.Context, userID, bookExternalID int64, rentalDays int, startDate time.Time) (*domain.ReservationResponse, error)
	ReturnBook(ctx context.Context, reservationID uuid.UUID, returnDate time.Time) (*domain.ReservationResponse, error)
	GetReservationByID(ctx context.Context, reservationID uuid.UUID) (*domain.ReservationResponse, error)
	GetAllReservations(ctx context.Context) ([]*domain.ReservationResponse, error)
	GetReservationsByUserID(ctx context.Context, userID int64) ([]*domain.ReservationResponse, error)
	GetReservationsByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.ReservationResponse, error)
	GetActiveReservations(ctx context.Context) ([]*domain.ReservationResponse, error)
	GetOverdueReservations(ctx context.Context) ([]*domain.ReservationResponse, error)
}

type ReservationHandler struct {
	service   ReservationService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewReservationHandler(service ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// CreateReservation handles POST /reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	// Validated by the datetime tag above
	startDate, _ := time.Parse(dateLayout, req.StartDate)

	reservation, err := h.service.CreateReservation(r.Context(), req.UserID, req.BookExternalID, req.RentalDays, startDate)
	if err != nil {
		h.handleError(w, "Failed to create reservation", err)
		return
	}

	response.Created(w, reservation)
}

// ReturnBook handles POST /reservations/{id}/return; a missing return_date means today
func (h *ReservationHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reservationID(w, r)
	if !ok {
		return
	}

	var req domain.ReturnBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	returnDate := utils.Today()
	if req.ReturnDate != "" {
		returnDate, _ = time.Parse(dateLayout, req.ReturnDate)
	}

	reservation, err := h.service.ReturnBook(r.Context(), id, returnDate)
	if err != nil {
		h.handleError(w, "Failed to return book", err)
		return
	}

	response.Success(w, reservation)
}

// GetReservation handles GET /reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reservationID(w, r)
	if !ok {
		return
	}

	reservation, err := h.service.GetReservationByID(r.Context(), id)
	if err != nil {
		h.handleError(w, "Failed to get reservation", err)
		return
	}

	response.Success(w, reservation)
}

// ListReservations handles GET /reservations with an optional ?status= filter
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	var (
		reservations []*domain.ReservationResponse
		err          error
	)

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, parseErr := domain.ParseReservationStatus(raw)
		if parseErr != nil {
			response.BadRequest(w, "Invalid status filter", parseErr)
			return
		}
		reservations, err = h.service.GetReservationsByStatus(r.Context(), status)
	} else {
		reservations, err = h.service.GetAllReservations(r.Context())
	}

	h.respondList(w, reservations, err)
}

// ListActive handles GET /reservations/active
func (h *ReservationHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.GetActiveReservations(r.Context())
	h.respondList(w, reservations, err)
}

// ListOverdue handles GET /reservations/overdue
func (h *ReservationHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.GetOverdueReservations(r.Context())
	h.respondList(w, reservations, err)
}

// ListByUser handles GET /users/{userId}/reservations
func (h *ReservationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(w, "Invalid user ID", fmt.Errorf("user ID must be a positive integer"))
		return
	}

	reservations, err := h.service.GetReservationsByUserID(r.Context(), userID)
	h.respondList(w, reservations, err)
}

func (h *ReservationHandler) respondList(w http.ResponseWriter, reservations []*domain.ReservationResponse, err error) {
	if err != nil {
		h.handleError(w, "Failed to list reservations", err)
		return
	}
	response.Success(w, reservations)
}

func (h *ReservationHandler) reservationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid reservation ID", err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *ReservationHandler) handleError(w http.ResponseWriter, message string, err error) {
	status := customError.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
	}
	response.ErrorWithCode(w, status, customError.Code(err), message, err)
}
