package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/booking"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/entities"
)

func TestPostgresBookingRepository_ModelRoundTrip(t *testing.T) {
	repo := NewPostgresBookingRepository(nil, discardLogger())
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	original := &booking.Booking{
		ID:              "b-1",
		UserID:          "user-1",
		HotelID:         "diH7",
		DestinationID:   "WD0M",
		RoomKey:         "er-1",
		Checkin:         "2026-11-01",
		Checkout:        "2026-11-03",
		Guests:          "2",
		Price:           310,
		Currency:        "SGD",
		Guest:           booking.Guest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "+65 6000 0000"},
		SpecialRequests: "late check-in",
		Status:          "confirmed",
	}

	model, err := repo.convertDomainToModel(original)
	require.NoError(t, err)
	assert.JSONEq(t, `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","phone":"+65 6000 0000"}`, string(model.Guest))

	model.CreatedAt = created
	restored, err := repo.convertModelToDomain(model)
	require.NoError(t, err)

	original.CreatedAt = created
	assert.Equal(t, original, restored)
}

func TestPostgresBookingRepository_InvalidGuestJSON(t *testing.T) {
	repo := NewPostgresBookingRepository(nil, discardLogger())

	_, err := repo.convertModelToDomain(&entities.BookingData{ID: "b-1", Guest: datatypes.JSON(`not json`)})

	assert.ErrorContains(t, err, "failed to decode guest for booking b-1")
}
