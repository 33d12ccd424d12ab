package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/victoragudo/hotel-booking-aggregator/internal/application/polling"
	"github.com/victoragudo/hotel-booking-aggregator/internal/application/usecase"
	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/constants"
)

type HotelHandler struct {
	searchDestinationHotelsUseCase *usecase.SearchDestinationHotelsUseCase
	pollDestinationPricesUseCase   *usecase.PollDestinationPricesUseCase
	getHotelByIDUseCase            *usecase.GetHotelByIDUseCase
	getRoomsUseCase                *usecase.GetRoomsUseCase
	logger                         *slog.Logger
}

func NewHotelHandler(
	searchDestinationHotelsUseCase *usecase.SearchDestinationHotelsUseCase,
	pollDestinationPricesUseCase *usecase.PollDestinationPricesUseCase,
	getHotelByIDUseCase *usecase.GetHotelByIDUseCase,
	getRoomsUseCase *usecase.GetRoomsUseCase,
	logger *slog.Logger,
) *HotelHandler {
	return &HotelHandler{
		searchDestinationHotelsUseCase: searchDestinationHotelsUseCase,
		pollDestinationPricesUseCase:   pollDestinationPricesUseCase,
		getHotelByIDUseCase:            getHotelByIDUseCase,
		getRoomsUseCase:                getRoomsUseCase,
		logger:                         logger,
	}
}

func destinationQuery(r *http.Request) usecase.DestinationSearchQuery {
	query := r.URL.Query()
	return usecase.DestinationSearchQuery{
		DestinationID: mux.Vars(r)["destinationId"],
		Checkin:       query.Get("checkin"),
		Checkout:      query.Get("checkout"),
		Guests:        query.Get("guests"),
	}
}

// GetHotelsByDestination returns merged hotel metadata and prices for a destination
// @Summary Search hotels by destination
// @Description Fetches hotel metadata and polls prices concurrently, then merges them on hotel id. Upstream failures yield an empty list.
// @Tags hotels
// @Produce json
// @Param destinationId path string true "Destination ID"
// @Param checkin query string false "Check-in date (YYYY-MM-DD)"
// @Param checkout query string false "Check-out date (YYYY-MM-DD)"
// @Param guests query string false "Guests per room, pipe separated per room"
// @Success 200 {array} hotel.MergedHotel "Merged hotels in price order"
// @Router /hotels/uid/{destinationId} [get]
func (h *HotelHandler) GetHotelsByDestination(w http.ResponseWriter, r *http.Request) {
	query := destinationQuery(r)
	if query.DestinationID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "destination ID is required", "")
		return
	}

	results := h.searchDestinationHotelsUseCase.Execute(r.Context(), query)
	writeJSON(w, h.logger, http.StatusOK, results)
}

// GetDestinationPrices returns the completed price envelope for a destination
// @Summary Poll destination prices
// @Description Polls the pricing endpoint until completion. Returns 504 when the retry budget is exhausted.
// @Tags hotels
// @Produce json
// @Param destinationId path string true "Destination ID"
// @Param checkin query string false "Check-in date (YYYY-MM-DD)"
// @Param checkout query string false "Check-out date (YYYY-MM-DD)"
// @Param guests query string false "Guests per room"
// @Success 200 {object} hotel.PriceEnvelope "Completed price envelope"
// @Failure 504 {object} ErrorResponse "Polling exhausted"
// @Failure 500 {object} ErrorResponse "Upstream failure"
// @Router /hotels/prices/{destinationId} [get]
func (h *HotelHandler) GetDestinationPrices(w http.ResponseWriter, r *http.Request) {
	query := destinationQuery(r)
	if query.DestinationID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "destination ID is required", "")
		return
	}

	envelope, err := h.pollDestinationPricesUseCase.Execute(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, polling.ErrPollExhausted):
			writeError(w, h.logger, http.StatusGatewayTimeout, polling.ErrPollExhausted.Error(), "")
		default:
			h.writeUpstreamFailure(w, "failed to fetch hotel prices", err)
		}
		return
	}

	writeJSON(w, h.logger, http.StatusOK, envelope)
}

// GetHotelByID returns metadata for a single hotel
// @Summary Get hotel by ID
// @Description Get static hotel metadata by its upstream ID
// @Tags hotels
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} hotel.Metadata "Hotel details"
// @Failure 404 {object} ErrorResponse "Hotel not found"
// @Failure 500 {object} ErrorResponse "Upstream failure"
// @Router /hotels/{id} [get]
func (h *HotelHandler) GetHotelByID(w http.ResponseWriter, r *http.Request) {
	hotelID := mux.Vars(r)["id"]
	if hotelID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "hotel ID is required", "")
		return
	}

	found, err := h.getHotelByIDUseCase.Execute(r.Context(), hotelID)
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, hotel.ErrNotFound.Error(), "")
			return
		}
		h.writeUpstreamFailure(w, "failed to fetch hotel", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, found)
}

// GetRooms returns room prices for one hotel with its metadata attached
// @Summary Get room prices
// @Description Fetches per-hotel room prices and attaches the matching hotel record under "hotel" (null when unavailable)
// @Tags rooms
// @Produce json
// @Param hotel_id query string true "Hotel ID"
// @Param destination_id query string true "Destination ID"
// @Param checkin query string true "Check-in date (YYYY-MM-DD)"
// @Param checkout query string true "Check-out date (YYYY-MM-DD)"
// @Param guests query string true "Guests per room"
// @Param lang query string false "Language (default en_US)"
// @Param currency query string false "Currency (default SGD)"
// @Param country_code query string false "Country code (default SG)"
// @Param partner_id query string false "Partner ID (default 1)"
// @Success 200 {object} object "Room price payload with hotel"
// @Failure 400 {object} ErrorResponse "Missing required query params"
// @Failure 500 {object} ErrorResponse "Upstream failure"
// @Router /rooms [get]
func (h *HotelHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	query := usecase.RoomsQuery{
		HotelID:       values.Get("hotel_id"),
		DestinationID: values.Get("destination_id"),
		Checkin:       values.Get("checkin"),
		Checkout:      values.Get("checkout"),
		Guests:        values.Get("guests"),
		Lang:          values.Get("lang"),
		Currency:      values.Get("currency"),
		CountryCode:   values.Get("country_code"),
		PartnerID:     values.Get("partner_id"),
	}

	offer, err := h.getRoomsUseCase.Execute(r.Context(), query)
	if err != nil {
		var validationErr *hotel.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, h.logger, http.StatusBadRequest, validationErr.Error(), "")
			return
		}
		h.logger.Error("Failed to get rooms", constants.HotelId, query.HotelID, "error", err)
		h.writeUpstreamFailure(w, "failed to fetch room prices", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, offer)
}

// writeUpstreamFailure passes the upstream status through, 500 when there is none.
func (h *HotelHandler) writeUpstreamFailure(w http.ResponseWriter, message string, err error) {
	statusCode := http.StatusInternalServerError
	details := err.Error()
	if upstreamErr, ok := hotel.AsUpstreamError(err); ok {
		statusCode = upstreamErr.HTTPStatus()
		if upstreamErr.Body != "" {
			details = upstreamErr.Body
		}
	}
	writeError(w, h.logger, statusCode, message, details)
}

// HealthCheck returns the health status of the aggregator
// @Summary Health check
// @Description Get the current health status of the aggregator
// @Tags health
// @Produce json
// @Success 200 {object} object "Service health status with timestamp and version"
// @Router /health [get]
func (h *HotelHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	health := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "hotel-booking-aggregator",
		"version":   "1.0.0",
	}

	writeJSON(w, h.logger, http.StatusOK, health)
}
