package constants

// Log attribute keys shared across packages.
const (
	HotelId       = "hotel_id"
	DestinationId = "destination_id"
	BookingId     = "booking_id"
	UserId        = "user_id"
	RequestId     = "request_id"
)

const (
	MessageTypeBookingCreated = "booking.created"
)

const RequestIDHeader = "X-Request-ID"
