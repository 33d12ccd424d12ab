package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/booking"
	"github.com/victoragudo/hotel-booking-aggregator/internal/mocks"
)

func validBooking() *booking.Booking {
	return &booking.Booking{
		HotelID:  "diH7",
		RoomKey:  "er-1",
		Checkin:  "2026-11-01",
		Checkout: "2026-11-03",
		Guests:   "2",
		Price:    310,
		Guest:    booking.Guest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
	}
}

func TestCreateBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)

	var stored *booking.Booking
	store.EXPECT().InsertOne(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *booking.Booking) error {
		stored = b
		return nil
	})
	publisher.EXPECT().PublishBookingCreated(gomock.Any(), gomock.Any()).Return(nil)

	uc := NewCreateBookingUseCase(store, publisher, discardLogger())
	created, err := uc.Execute(context.Background(), "user-1", validBooking())

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, "confirmed", created.Status)
	assert.Equal(t, "SGD", created.Currency)
	assert.Equal(t, created, stored)
}

func TestCreateBooking_InvalidSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	request := validBooking()
	request.Price = 0

	uc := NewCreateBookingUseCase(store, nil, discardLogger())
	_, err := uc.Execute(context.Background(), "user-1", request)

	var validationErr *booking.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"price"}, validationErr.Fields)
}

func TestCreateBooking_PublishFailureIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)

	store.EXPECT().InsertOne(gomock.Any(), gomock.Any()).Return(nil)
	publisher.EXPECT().PublishBookingCreated(gomock.Any(), gomock.Any()).Return(errors.New("channel closed"))

	uc := NewCreateBookingUseCase(store, publisher, discardLogger())
	created, err := uc.Execute(context.Background(), "user-1", validBooking())

	require.NoError(t, err)
	assert.NotNil(t, created)
}

func TestCreateBooking_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)

	store.EXPECT().InsertOne(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	uc := NewCreateBookingUseCase(store, publisher, discardLogger())
	_, err := uc.Execute(context.Background(), "user-1", validBooking())

	assert.ErrorContains(t, err, "failed to store booking")
}

func TestListBookings(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	store.EXPECT().Find(gomock.Any(), "user-1").Return(nil, nil)

	uc := NewListBookingsUseCase(store, discardLogger())
	bookings, err := uc.Execute(context.Background(), "user-1")

	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestGetBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	store.EXPECT().FindOne(gomock.Any(), "b-1", "user-1").Return(&booking.Booking{ID: "b-1", UserID: "user-1"}, nil)
	store.EXPECT().FindOne(gomock.Any(), "b-2", "user-1").Return(nil, booking.ErrNotFound)

	uc := NewGetBookingUseCase(store, discardLogger())

	found, err := uc.Execute(context.Background(), "user-1", "b-1")
	require.NoError(t, err)
	assert.Equal(t, "b-1", found.ID)

	_, err = uc.Execute(context.Background(), "user-1", "b-2")
	assert.ErrorIs(t, err, booking.ErrNotFound)
}
