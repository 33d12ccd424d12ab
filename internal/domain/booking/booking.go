package booking

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("booking not found")

type Guest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type Booking struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	HotelID         string    `json:"hotel_id"`
	DestinationID   string    `json:"destination_id,omitempty"`
	RoomKey         string    `json:"room_key"`
	Checkin         string    `json:"checkin"`
	Checkout        string    `json:"checkout"`
	Guests          string    `json:"guests"`
	Price           float64   `json:"price"`
	Currency        string    `json:"currency"`
	Guest           Guest     `json:"guest"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// ValidationError lists the booking fields that are missing or invalid.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid booking: " + strings.Join(e.Fields, ", ")
}

const dateLayout = "2006-01-02"

func (b *Booking) Validate() error {
	var fields []string

	if strings.TrimSpace(b.HotelID) == "" {
		fields = append(fields, "hotel_id")
	}
	if strings.TrimSpace(b.RoomKey) == "" {
		fields = append(fields, "room_key")
	}
	if strings.TrimSpace(b.Guests) == "" {
		fields = append(fields, "guests")
	}
	if b.Price <= 0 {
		fields = append(fields, "price")
	}
	if !strings.Contains(b.Guest.Email, "@") {
		fields = append(fields, "guest.email")
	}

	checkin, checkinErr := time.Parse(dateLayout, b.Checkin)
	if checkinErr != nil {
		fields = append(fields, "checkin")
	}
	checkout, checkoutErr := time.Parse(dateLayout, b.Checkout)
	if checkoutErr != nil {
		fields = append(fields, "checkout")
	}
	if checkinErr == nil && checkoutErr == nil && !checkout.After(checkin) {
		fields = append(fields, "checkout must be after checkin")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
