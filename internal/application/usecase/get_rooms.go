package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/constants"
)

type RoomDefaults struct {
	Lang        string
	Currency    string
	CountryCode string
	PartnerID   string
}

func DefaultRoomDefaults() RoomDefaults {
	return RoomDefaults{
		Lang:        "en_US",
		Currency:    "SGD",
		CountryCode: "SG",
		PartnerID:   "1",
	}
}

type RoomsQuery struct {
	HotelID       string
	DestinationID string
	Checkin       string
	Checkout      string
	Guests        string
	Lang          string
	Currency      string
	CountryCode   string
	PartnerID     string
}

// Validate reports every missing required parameter in request order.
func (q RoomsQuery) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"hotel_id", q.HotelID},
		{"destination_id", q.DestinationID},
		{"checkin", q.Checkin},
		{"checkout", q.Checkout},
		{"guests", q.Guests},
	}

	var missing []string
	for _, field := range required {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return &hotel.ValidationError{Missing: missing}
	}
	return nil
}

func (q RoomsQuery) params(defaults RoomDefaults) hotel.QueryParams {
	return hotel.QueryParams{
		"destination_id": q.DestinationID,
		"checkin":        q.Checkin,
		"checkout":       q.Checkout,
		"guests":         q.Guests,
		"lang":           firstNonEmpty(q.Lang, defaults.Lang),
		"currency":       firstNonEmpty(q.Currency, defaults.Currency),
		"country_code":   firstNonEmpty(q.CountryCode, defaults.CountryCode),
		"partner_id":     firstNonEmpty(q.PartnerID, defaults.PartnerID),
	}
}

type GetRoomsUseCase struct {
	provider hotel.Provider
	metadata *HotelMetadataSource
	defaults RoomDefaults
	logger   *slog.Logger
}

func NewGetRoomsUseCase(provider hotel.Provider, metadata *HotelMetadataSource, defaults RoomDefaults, logger *slog.Logger) *GetRoomsUseCase {
	return &GetRoomsUseCase{
		provider: provider,
		metadata: metadata,
		defaults: defaults,
		logger:   logger,
	}
}

// Execute returns the hotel's room price payload with the matching hotel record attached.
// A failed price call is returned unchanged; a failed hotel lookup leaves the hotel nil.
func (uc *GetRoomsUseCase) Execute(ctx context.Context, query RoomsQuery) (*hotel.RoomOffer, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	raw, err := uc.provider.Get(ctx, hotel.HotelPriceEndpoint(query.HotelID), query.params(uc.defaults))
	if err != nil {
		uc.logger.Error("Failed to fetch room prices", constants.HotelId, query.HotelID, "error", err)
		return nil, err
	}

	payload, err := hotel.DecodeRoomPayload(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to read room prices for hotel %s: %w", query.HotelID, err)
	}

	offer := &hotel.RoomOffer{Payload: payload}

	list, err := uc.metadata.ByDestination(ctx, query.DestinationID)
	if err != nil {
		uc.logger.Warn("Failed to fetch hotel list for rooms",
			constants.HotelId, query.HotelID,
			constants.DestinationId, query.DestinationID,
			"error", err)
		return offer, nil
	}

	if metadata, ok := hotel.FindByID(list, query.HotelID); ok {
		offer.Hotel = metadata
	}
	return offer, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
