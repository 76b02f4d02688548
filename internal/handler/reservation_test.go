package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/mocks"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/segyhp/rental-engine/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool                        `json:"success"`
	Data    *domain.ReservationResponse `json:"data"`
	Code    string                      `json:"code"`
	Message string                      `json:"message"`
}

type listEnvelope struct {
	Success bool                          `json:"success"`
	Data    []*domain.ReservationResponse `json:"data"`
}

func newTestRouter(svc *mocks.MockReservationService) http.Handler {
	return NewRouter(NewReservationHandler(svc, zap.NewNop()), nil, zap.NewNop())
}

func sampleResponse() *domain.ReservationResponse {
	return &domain.ReservationResponse{
		ID:                 uuid.New(),
		UserID:             1,
		UserName:           "Juan Pérez",
		BookExternalID:     258027,
		BookTitle:          "The Lord of the Rings",
		RentalDays:         7,
		StartDate:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ExpectedReturnDate: time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
		DailyRate:          decimal.RequireFromString("15.99"),
		TotalFee:           decimal.RequireFromString("111.93"),
		LateFee:            decimal.Zero,
		Status:             domain.ReservationStatusActive,
	}
}

func TestReservationHandler_CreateReservation(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mocks.MockReservationService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "created",
			body: `{"user_id":1,"book_external_id":258027,"rental_days":7,"start_date":"2024-06-01"}`,
			setupMock: func(m *mocks.MockReservationService) {
				m.On("CreateReservation", mock.Anything, int64(1), int64(258027), 7,
					time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)).Return(sampleResponse(), nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "malformed json",
			body:           `{"user_id":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing rental days",
			body:           `{"user_id":1,"book_external_id":258027,"start_date":"2024-06-01"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad date",
			body:           `{"user_id":1,"book_external_id":258027,"rental_days":7,"start_date":"01/06/2024"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "book unavailable",
			body: `{"user_id":1,"book_external_id":258027,"rental_days":7,"start_date":"2024-06-01"}`,
			setupMock: func(m *mocks.MockReservationService) {
				m.On("CreateReservation", mock.Anything, int64(1), int64(258027), 7, mock.Anything).
					Return(nil, customError.WrapBookUnavailable("The Lord of the Rings"))
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   customError.ErrCodeBookUnavailable,
		},
		{
			name: "user not found",
			body: `{"user_id":9,"book_external_id":258027,"rental_days":7,"start_date":"2024-06-01"}`,
			setupMock: func(m *mocks.MockReservationService) {
				m.On("CreateReservation", mock.Anything, int64(9), int64(258027), 7, mock.Anything).
					Return(nil, customError.WrapUserNotFound(9))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   customError.ErrCodeUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockReservationService{}
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			newTestRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedStatus < 300, body.Success)
			assert.Equal(t, tt.expectedCode, body.Code)
			if tt.expectedStatus == http.StatusCreated {
				require.NotNil(t, body.Data)
				assert.True(t, body.Data.TotalFee.Equal(decimal.RequireFromString("111.93")))
			}

			svc.AssertExpectations(t)
		})
	}
}

func TestReservationHandler_ReturnBook(t *testing.T) {
	id := uuid.New()

	t.Run("explicit return date", func(t *testing.T) {
		svc := &mocks.MockReservationService{}
		returned := sampleResponse()
		returned.Status = domain.ReservationStatusReturned
		returned.LateFee = decimal.RequireFromString("7.20")
		svc.On("ReturnBook", mock.Anything, id, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)).Return(returned, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+id.String()+"/return",
			bytes.NewBufferString(`{"return_date":"2024-06-11"}`))
		w := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, domain.ReservationStatusReturned, body.Data.Status)
		assert.True(t, body.Data.LateFee.Equal(decimal.RequireFromString("7.20")))
		svc.AssertExpectations(t)
	})

	t.Run("empty body defaults to today", func(t *testing.T) {
		svc := &mocks.MockReservationService{}
		svc.On("ReturnBook", mock.Anything, id, utils.Today()).Return(sampleResponse(), nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+id.String()+"/return", nil)
		w := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("already returned", func(t *testing.T) {
		svc := &mocks.MockReservationService{}
		svc.On("ReturnBook", mock.Anything, id, mock.Anything).Return(nil, customError.WrapAlreadyReturned(id.String()))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+id.String()+"/return", nil)
		w := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		var body envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, customError.ErrCodeAlreadyReturned, body.Code)
	})

	t.Run("bad return date", func(t *testing.T) {
		svc := &mocks.MockReservationService{}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+id.String()+"/return",
			bytes.NewBufferString(`{"return_date":"tomorrow"}`))
		w := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "ReturnBook", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReservationHandler_GetReservation(t *testing.T) {
	svc := &mocks.MockReservationService{}
	found := sampleResponse()
	missing := uuid.New()
	svc.On("GetReservationByID", mock.Anything, found.ID).Return(found, nil)
	svc.On("GetReservationByID", mock.Anything, missing).Return(nil, customError.WrapReservationNotFound(missing.String()))
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+found.ID.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, found.ID, body.Data.ID)
	assert.Equal(t, "The Lord of the Rings", body.Data.BookTitle)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+missing.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/not-a-uuid", nil))
	assert.Equal(t, http.StatusNotFound, w.Code, "unmatched route")
}

func TestReservationHandler_Lists(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*mocks.MockReservationService)
		expectedStatus int
		expectedLen    int
	}{
		{
			name: "all",
			path: "/api/v1/reservations",
			setupMock: func(m *mocks.MockReservationService) {
				m.On("GetAllReservations", mock.Anything).Return([]*domain.ReservationResponse{sampleResponse(), sampleResponse()}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name: "by status",
			path: "/api/v1/reservations?status=RETURNED",
			setupMock: func(m *mocks.MockReservationService) {
				m.On("GetReservationsByStatus", mock.Anything, domain.ReservationStatusReturned).Return([]*domain.ReservationResponse{sampleResponse()}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    1,
		},
		{
			name:           "unknown status",
			path:           "/api/v1/reservations?status=LOST",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "active",
			path: "/api/v1/reservations/active",
			setupMock: func(m *mocks.MockReservationService) {
				m.On("GetActiveReservations", mock.Anything).Return([]*domain.ReservationResponse{sampleResponse()}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    1,
		},
		{
			name: "overdue",
			path: "/api/v1/reservations/overdue",
			setupMock: func(m *mocks.MockReservationService) {
				m.On("GetOverdueReservations", mock.Anything).Return([]*domain.ReservationResponse{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name: "by user",
			path: "/api/v1/users/1/reservations",
			setupMock: func(m *mocks.MockReservationService) {
				m.On("GetReservationsByUserID", mock.Anything, int64(1)).Return([]*domain.ReservationResponse{sampleResponse()}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    1,
		},
		{
			name: "database failure",
			path: "/api/v1/reservations/overdue",
			setupMock: func(m *mocks.MockReservationService) {
				m.On("GetOverdueReservations", mock.Anything).Return(nil, customError.WrapDatabaseError(assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockReservationService{}
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			w := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var body listEnvelope
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.True(t, body.Success)
				assert.Len(t, body.Data, tt.expectedLen)
			}
			svc.AssertExpectations(t)
		})
	}
}
