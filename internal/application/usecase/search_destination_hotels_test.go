package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
	"github.com/victoragudo/hotel-booking-aggregator/internal/mocks"
)

var searchQuery = DestinationSearchQuery{DestinationID: "WD0M", Checkin: "2026-11-01", Checkout: "2026-11-03", Guests: "2"}

func TestSearchDestinationHotels_MergesInQuoteOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)

	provider.EXPECT().
		Get(gomock.Any(), hotel.HotelsEndpoint(), hotel.QueryParams{"destination_id": "WD0M"}).
		Return(raw(hotelListJSON), nil)

	provider.EXPECT().
		Get(gomock.Any(), hotel.PricesEndpoint(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ hotel.Endpoint, params hotel.QueryParams) (json.RawMessage, error) {
			values := params.Encode()
			assert.Equal(t, "WD0M", values.Get("destination_id"))
			assert.Equal(t, "2026-11-01", values.Get("checkin"))
			assert.Equal(t, "USD", values.Get("currency"))
			assert.Equal(t, "US", values.Get("country_code"))
			assert.Equal(t, "1089", values.Get("partner_id"))
			assert.Equal(t, "earn", values.Get("product_type"))
			return raw(completedPricesJSON), nil
		})

	metadata := NewHotelMetadataSource(provider, nil, 0, discardLogger())
	uc := NewSearchDestinationHotelsUseCase(metadata, newTestPoller(t, provider, 5), DefaultSearchDefaults(), discardLogger())

	results := uc.Execute(context.Background(), searchQuery)

	require.Len(t, results, 2)
	assert.Equal(t, "obxM", results[0].ID)
	assert.Equal(t, "10 Bayfront Avenue", *results[0].Address)
	assert.Equal(t, 8.9, *results[0].TrustYouScore)
	assert.Equal(t, 420.5, results[0].Price)
	assert.Equal(t, "diH7", results[1].ID)
	assert.Equal(t, 95.0, *results[1].TrustYouScore)
	assert.True(t, results[1].FreeCancellation)
}

func TestSearchDestinationHotels_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name         string
		metadataBody string
		metadataErr  error
		priceBodies  []string
		priceErr     error
		maxAttempts  int
	}{
		{
			name:        "metadata upstream failure",
			metadataErr: &hotel.UpstreamError{Endpoint: "hotels", StatusCode: http.StatusServiceUnavailable},
			priceBodies: []string{completedPricesJSON},
			maxAttempts: 3,
		},
		{
			name:         "empty metadata list",
			metadataBody: `[]`,
			priceBodies:  []string{completedPricesJSON},
			maxAttempts:  3,
		},
		{
			name:         "price polling exhausted",
			metadataBody: hotelListJSON,
			priceBodies:  []string{pendingPricesJSON, pendingPricesJSON, pendingPricesJSON},
			maxAttempts:  3,
		},
		{
			name:         "price upstream failure",
			metadataBody: hotelListJSON,
			priceErr:     &hotel.UpstreamError{Endpoint: "prices", Err: errors.New("connection refused")},
			maxAttempts:  3,
		},
		{
			name:         "completed with no quotes",
			metadataBody: hotelListJSON,
			priceBodies:  []string{`{"completed":true,"hotels":[]}`},
			maxAttempts:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			provider := mocks.NewMockProvider(ctrl)

			provider.EXPECT().
				Get(gomock.Any(), hotel.HotelsEndpoint(), gomock.Any()).
				Return(raw(tt.metadataBody), tt.metadataErr)

			if tt.priceErr != nil {
				provider.EXPECT().Get(gomock.Any(), hotel.PricesEndpoint(), gomock.Any()).Return(nil, tt.priceErr)
			}
			for _, body := range tt.priceBodies {
				provider.EXPECT().Get(gomock.Any(), hotel.PricesEndpoint(), gomock.Any()).Return(raw(body), nil)
			}

			metadata := NewHotelMetadataSource(provider, nil, 0, discardLogger())
			uc := NewSearchDestinationHotelsUseCase(metadata, newTestPoller(t, provider, tt.maxAttempts), DefaultSearchDefaults(), discardLogger())

			results := uc.Execute(context.Background(), searchQuery)

			require.NotNil(t, results)
			assert.Empty(t, results)
		})
	}
}

func TestSearchDestinationHotels_UsesCachedMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)

	cache.EXPECT().Get(gomock.Any(), "hotels:destination:WD0M").Return([]byte(hotelListJSON), nil)
	provider.EXPECT().Get(gomock.Any(), hotel.PricesEndpoint(), gomock.Any()).Return(raw(completedPricesJSON), nil)

	metadata := NewHotelMetadataSource(provider, cache, 0, discardLogger())
	uc := NewSearchDestinationHotelsUseCase(metadata, newTestPoller(t, provider, 1), DefaultSearchDefaults(), discardLogger())

	results := uc.Execute(context.Background(), searchQuery)

	assert.Len(t, results, 2)
}

func TestSearchDestinationHotels_FetchesRunConcurrently(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)

	// Each fetch waits until the other has started, so the search only
	// completes when both are in flight together.
	var arrived sync.WaitGroup
	arrived.Add(2)
	bothStarted := func() error {
		arrived.Done()
		done := make(chan struct{})
		go func() {
			arrived.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-time.After(time.Second):
			return errors.New("fetches ran sequentially")
		}
	}

	provider.EXPECT().
		Get(gomock.Any(), hotel.HotelsEndpoint(), gomock.Any()).
		DoAndReturn(func(context.Context, hotel.Endpoint, hotel.QueryParams) (json.RawMessage, error) {
			if err := bothStarted(); err != nil {
				return nil, err
			}
			return raw(hotelListJSON), nil
		})
	provider.EXPECT().
		Get(gomock.Any(), hotel.PricesEndpoint(), gomock.Any()).
		DoAndReturn(func(context.Context, hotel.Endpoint, hotel.QueryParams) (json.RawMessage, error) {
			if err := bothStarted(); err != nil {
				return nil, err
			}
			return raw(completedPricesJSON), nil
		})

	metadata := NewHotelMetadataSource(provider, nil, 0, discardLogger())
	uc := NewSearchDestinationHotelsUseCase(metadata, newTestPoller(t, provider, 1), DefaultSearchDefaults(), discardLogger())

	assert.Len(t, uc.Execute(context.Background(), searchQuery), 2)
}
