package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/booking"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/constants"
)

const defaultBookingCurrency = "SGD"

type CreateBookingUseCase struct {
	store     booking.Store
	publisher booking.EventPublisher
	logger    *slog.Logger
}

func NewCreateBookingUseCase(store booking.Store, publisher booking.EventPublisher, logger *slog.Logger) *CreateBookingUseCase {
	return &CreateBookingUseCase{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute validates and stores a booking for userID, then publishes a booking.created
// event. Publish failures are logged and do not fail the booking.
func (uc *CreateBookingUseCase) Execute(ctx context.Context, userID string, request *booking.Booking) (*booking.Booking, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	created := *request
	created.ID = uuid.New().String()
	created.UserID = userID
	created.Status = "confirmed"
	if strings.TrimSpace(created.Currency) == "" {
		created.Currency = defaultBookingCurrency
	}

	if err := uc.store.InsertOne(ctx, &created); err != nil {
		uc.logger.Error("Failed to store booking", constants.UserId, userID, constants.HotelId, created.HotelID, "error", err)
		return nil, fmt.Errorf("failed to store booking: %w", err)
	}

	uc.logger.Info("Booking created", constants.BookingId, created.ID, constants.UserId, userID, constants.HotelId, created.HotelID)

	if uc.publisher != nil {
		if err := uc.publisher.PublishBookingCreated(ctx, &created); err != nil {
			uc.logger.Warn("Failed to publish booking event", constants.BookingId, created.ID, "error", err)
		}
	}

	return &created, nil
}

type ListBookingsUseCase struct {
	store  booking.Store
	logger *slog.Logger
}

func NewListBookingsUseCase(store booking.Store, logger *slog.Logger) *ListBookingsUseCase {
	return &ListBookingsUseCase{store: store, logger: logger}
}

func (uc *ListBookingsUseCase) Execute(ctx context.Context, userID string) ([]*booking.Booking, error) {
	bookings, err := uc.store.Find(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list bookings", constants.UserId, userID, "error", err)
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*booking.Booking{}
	}
	return bookings, nil
}

type GetBookingUseCase struct {
	store  booking.Store
	logger *slog.Logger
}

func NewGetBookingUseCase(store booking.Store, logger *slog.Logger) *GetBookingUseCase {
	return &GetBookingUseCase{store: store, logger: logger}
}

// Execute returns booking.ErrNotFound when the booking does not exist or belongs to another user.
func (uc *GetBookingUseCase) Execute(ctx context.Context, userID, bookingID string) (*booking.Booking, error) {
	found, err := uc.store.FindOne(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, booking.ErrNotFound
	}
	return found, nil
}
