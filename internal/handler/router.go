package handler

import (
	"github.com/segyhp/rental-engine/pkg/response"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const uuidPattern = "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}"

// NewRouter wires the API routes. healthHandler may be nil in tests.
func NewRouter(reservationHandler *ReservationHandler, healthHandler *HealthHandler, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(logger), response.CORSMiddleware)

	// Health check
	if healthHandler != nil {
		router.HandleFunc("/health", healthHandler.Health).Methods("GET")
		router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")
	}

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(response.JSONMiddleware)

	api.HandleFunc("/reservations", reservationHandler.CreateReservation).Methods("POST")
	api.HandleFunc("/reservations", reservationHandler.ListReservations).Methods("GET")
	api.HandleFunc("/reservations/active", reservationHandler.ListActive).Methods("GET")
	api.HandleFunc("/reservations/overdue", reservationHandler.ListOverdue).Methods("GET")
	api.HandleFunc("/reservations/{id:"+uuidPattern+"}", reservationHandler.GetReservation).Methods("GET")
	api.HandleFunc("/reservations/{id:"+uuidPattern+"}/return", reservationHandler.ReturnBook).Methods("POST")
	api.HandleFunc("/users/{userId:[0-9]+}/reservations", reservationHandler.ListByUser).Methods("GET")

	return router
}
