package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBooking() *Booking {
	return &Booking{
		HotelID:  "diH7",
		RoomKey:  "er-1",
		Checkin:  "2026-11-01",
		Checkout: "2026-11-03",
		Guests:   "2",
		Price:    250,
		Currency: "SGD",
		Guest:    Guest{FirstName: "Sam", LastName: "Lee", Email: "sam@example.com"},
	}
}

func TestBooking_ValidateOK(t *testing.T) {
	assert.NoError(t, validBooking().Validate())
}

func TestBooking_ValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Booking)
		field  string
	}{
		{"missing hotel", func(b *Booking) { b.HotelID = " " }, "hotel_id"},
		{"missing room", func(b *Booking) { b.RoomKey = "" }, "room_key"},
		{"missing guests", func(b *Booking) { b.Guests = "" }, "guests"},
		{"non positive price", func(b *Booking) { b.Price = 0 }, "price"},
		{"bad email", func(b *Booking) { b.Guest.Email = "nope" }, "guest.email"},
		{"bad checkin", func(b *Booking) { b.Checkin = "01/11/2026" }, "checkin"},
		{"checkout before checkin", func(b *Booking) { b.Checkout = "2026-10-30" }, "checkout must be after checkin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := b.Validate()
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Contains(t, validationErr.Fields, tt.field)
		})
	}
}
