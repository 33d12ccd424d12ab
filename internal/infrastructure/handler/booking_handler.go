package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/victoragudo/hotel-booking-aggregator/internal/application/usecase"
	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/booking"
	"github.com/victoragudo/hotel-booking-aggregator/internal/infrastructure/auth"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/constants"
)

type BookingHandler struct {
	createBookingUseCase *usecase.CreateBookingUseCase
	listBookingsUseCase  *usecase.ListBookingsUseCase
	getBookingUseCase    *usecase.GetBookingUseCase
	logger               *slog.Logger
}

func NewBookingHandler(
	createBookingUseCase *usecase.CreateBookingUseCase,
	listBookingsUseCase *usecase.ListBookingsUseCase,
	getBookingUseCase *usecase.GetBookingUseCase,
	logger *slog.Logger,
) *BookingHandler {
	return &BookingHandler{
		createBookingUseCase: createBookingUseCase,
		listBookingsUseCase:  listBookingsUseCase,
		getBookingUseCase:    getBookingUseCase,
		logger:               logger,
	}
}

type CreateBookingRequest struct {
	HotelID         string        `json:"hotel_id"`
	DestinationID   string        `json:"destination_id"`
	Checkin         string        `json:"checkin"`
	Checkout        string        `json:"checkout"`
	Guests          string        `json:"guests"`
	RoomKey         string        `json:"room_key"`
	Price           float64       `json:"price"`
	Currency        string        `json:"currency"`
	Guest           booking.Guest `json:"guest"`
	SpecialRequests string        `json:"special_requests"`
}

func (req CreateBookingRequest) toBooking() *booking.Booking {
	return &booking.Booking{
		HotelID:         req.HotelID,
		DestinationID:   req.DestinationID,
		Checkin:         req.Checkin,
		Checkout:        req.Checkout,
		Guests:          req.Guests,
		RoomKey:         req.RoomKey,
		Price:           req.Price,
		Currency:        req.Currency,
		Guest:           req.Guest,
		SpecialRequests: req.SpecialRequests,
	}
}

// CreateBooking stores a booking for the authenticated user
// @Summary Create booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param booking body CreateBookingRequest true "Booking"
// @Success 201 {object} booking.Booking "Created booking"
// @Failure 400 {object} ErrorResponse "Invalid booking"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var request CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.createBookingUseCase.Execute(r.Context(), identity.UserID, request.toBooking())
	if err != nil {
		var validationErr *booking.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, h.logger, http.StatusBadRequest, validationErr.Error(), "")
			return
		}
		writeError(w, h.logger, http.StatusInternalServerError, "failed to create booking", "")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, created)
}

// ListBookings returns the authenticated user's bookings
// @Summary List bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} booking.Booking "Bookings, newest first"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	bookings, err := h.listBookingsUseCase.Execute(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "failed to list bookings", "")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, bookings)
}

// GetBooking returns one of the authenticated user's bookings
// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} booking.Booking "Booking"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Booking not found"
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	bookingID := mux.Vars(r)["id"]
	found, err := h.getBookingUseCase.Execute(r.Context(), identity.UserID, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, booking.ErrNotFound.Error(), "")
			return
		}
		h.logger.Error("Failed to get booking", constants.BookingId, bookingID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "failed to get booking", "")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, found)
}
