package booking

import "context"

//go:generate mockgen -source=repository.go -destination=../../mocks/mock_booking.go -package=mocks

// Store is the persistence collaborator for bookings.
type Store interface {
	Find(ctx context.Context, userID string) ([]*Booking, error)
	FindOne(ctx context.Context, id, userID string) (*Booking, error)
	InsertOne(ctx context.Context, booking *Booking) error
}

type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, booking *Booking) error
}
