package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
	"github.com/victoragudo/hotel-booking-aggregator/internal/mocks"
)

func TestGetHotelByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)

	cache.EXPECT().Get(gomock.Any(), "hotels:id:diH7").Return([]byte(`{"id":"diH7","name":"The Fullerton Hotel"}`), nil)

	uc := NewGetHotelByIDUseCase(NewHotelMetadataSource(provider, cache, 0, discardLogger()), discardLogger())
	found, err := uc.Execute(context.Background(), "diH7")

	require.NoError(t, err)
	assert.Equal(t, "The Fullerton Hotel", found.Name)
}

func TestGetHotelByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)

	provider.EXPECT().Get(gomock.Any(), hotel.HotelEndpoint("nope"), gomock.Any()).
		Return(nil, &hotel.UpstreamError{Endpoint: "hotel", StatusCode: http.StatusNotFound})

	uc := NewGetHotelByIDUseCase(NewHotelMetadataSource(provider, nil, 0, discardLogger()), discardLogger())
	_, err := uc.Execute(context.Background(), "nope")

	assert.ErrorIs(t, err, hotel.ErrNotFound)
}
