package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/victoragudo/hotel-booking-aggregator/internal/application/usecase"
	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/booking"
	"github.com/victoragudo/hotel-booking-aggregator/internal/infrastructure/auth"
	"github.com/victoragudo/hotel-booking-aggregator/internal/mocks"
)

const validBookingBody = `{
	"hotel_id": "diH7",
	"destination_id": "WD0M",
	"checkin": "2026-11-01",
	"checkout": "2026-11-03",
	"guests": "2",
	"room_key": "er-1",
	"price": 310,
	"currency": "SGD",
	"guest": {"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com"}
}`

type bookingFixture struct {
	router    *mux.Router
	store     *mocks.MockStore
	publisher *mocks.MockEventPublisher
	token     string
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := discardLogger()

	store := mocks.NewMockStore(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)
	provider := mocks.NewMockProvider(ctrl)

	validator, err := auth.NewJWTValidator("s3cret", "aggregator")
	require.NoError(t, err)
	token, err := validator.Issue("user-1", "ada@example.com", time.Hour)
	require.NoError(t, err)

	metadata := usecase.NewHotelMetadataSource(provider, nil, 0, logger)
	hotelHandler := NewHotelHandler(nil, nil, usecase.NewGetHotelByIDUseCase(metadata, logger), nil, logger)
	bookingHandler := NewBookingHandler(
		usecase.NewCreateBookingUseCase(store, publisher, logger),
		usecase.NewListBookingsUseCase(store, logger),
		usecase.NewGetBookingUseCase(store, logger),
		logger,
	)

	return &bookingFixture{
		router:    NewRouter(hotelHandler, bookingHandler, RouterConfig{TokenValidator: validator, Logger: logger}),
		store:     store,
		publisher: publisher,
		token:     token,
	}
}

func (f *bookingFixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	return recorder
}

func TestBookings_RequireAuth(t *testing.T) {
	fixture := newBookingFixture(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/bookings"},
		{http.MethodGet, "/bookings"},
		{http.MethodGet, "/bookings/b-1"},
	} {
		recorder := fixture.do(tc.method, tc.target, "", "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, tc.method+" "+tc.target)
		assert.JSONEq(t, `{"error":"unauthorized"}`, recorder.Body.String())
	}

	recorder := fixture.do(http.MethodGet, "/bookings", "", "forged.token.value")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateBooking(t *testing.T) {
	fixture := newBookingFixture(t)

	fixture.store.EXPECT().InsertOne(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *booking.Booking) error {
		assert.Equal(t, "user-1", b.UserID)
		assert.Equal(t, "diH7", b.HotelID)
		return nil
	})
	fixture.publisher.EXPECT().PublishBookingCreated(gomock.Any(), gomock.Any()).Return(nil)

	recorder := fixture.do(http.MethodPost, "/bookings", validBookingBody, fixture.token)

	require.Equal(t, http.StatusCreated, recorder.Code)
	var created booking.Booking
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "confirmed", created.Status)
	assert.Equal(t, "ada@example.com", created.Guest.Email)
}

func TestCreateBooking_BadRequests(t *testing.T) {
	fixture := newBookingFixture(t)

	recorder := fixture.do(http.MethodPost, "/bookings", `{"hotel_id":`, fixture.token)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "invalid request body")

	recorder = fixture.do(http.MethodPost, "/bookings", `{"hotel_id":"diH7"}`, fixture.token)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "invalid booking")
}

func TestCreateBooking_StoreFailure(t *testing.T) {
	fixture := newBookingFixture(t)
	fixture.store.EXPECT().InsertOne(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	recorder := fixture.do(http.MethodPost, "/bookings", validBookingBody, fixture.token)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"error":"failed to create booking"}`, recorder.Body.String())
}

func TestListBookings(t *testing.T) {
	fixture := newBookingFixture(t)
	fixture.store.EXPECT().Find(gomock.Any(), "user-1").Return([]*booking.Booking{{ID: "b-1", UserID: "user-1"}}, nil)

	recorder := fixture.do(http.MethodGet, "/bookings", "", fixture.token)

	require.Equal(t, http.StatusOK, recorder.Code)
	var bookings []booking.Booking
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, "b-1", bookings[0].ID)
}

func TestGetBooking(t *testing.T) {
	fixture := newBookingFixture(t)
	fixture.store.EXPECT().FindOne(gomock.Any(), "b-1", "user-1").Return(&booking.Booking{ID: "b-1", UserID: "user-1"}, nil)
	fixture.store.EXPECT().FindOne(gomock.Any(), "b-404", "user-1").Return(nil, booking.ErrNotFound)

	recorder := fixture.do(http.MethodGet, "/bookings/b-1", "", fixture.token)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = fixture.do(http.MethodGet, "/bookings/b-404", "", fixture.token)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"booking not found"}`, recorder.Body.String())
}
