package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/constants"
)

const DefaultMetadataTTL = 10 * time.Minute

// HotelMetadataSource reads hotel metadata from the hotel API with a cache-aside layer.
// Concurrent misses for the same key share one upstream call.
type HotelMetadataSource struct {
	provider hotel.Provider
	cache    hotel.CacheRepository
	ttl      time.Duration
	group    singleflight.Group
	logger   *slog.Logger
}

func NewHotelMetadataSource(provider hotel.Provider, cache hotel.CacheRepository, ttl time.Duration, logger *slog.Logger) *HotelMetadataSource {
	if ttl <= 0 {
		ttl = DefaultMetadataTTL
	}
	return &HotelMetadataSource{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

func destinationCacheKey(destinationID string) string {
	return "hotels:destination:" + destinationID
}

func hotelCacheKey(hotelID string) string {
	return "hotels:id:" + hotelID
}

func (s *HotelMetadataSource) ByDestination(ctx context.Context, destinationID string) ([]hotel.Metadata, error) {
	cacheKey := destinationCacheKey(destinationID)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		var list []hotel.Metadata
		if err := json.Unmarshal(cached, &list); err == nil {
			return list, nil
		}
		s.logger.Warn("Failed to unmarshal cached hotel list", constants.DestinationId, destinationID)
	}

	value, err := s.shared(ctx, cacheKey, func(ctx context.Context) (any, error) {
		raw, err := s.provider.Get(ctx, hotel.HotelsEndpoint(), hotel.QueryParams{"destination_id": destinationID})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch hotels for destination %s: %w", destinationID, err)
		}

		list, err := hotel.DecodeMetadataList(raw)
		if err != nil {
			return nil, err
		}

		if len(list) > 0 {
			s.writeCache(ctx, cacheKey, list)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]hotel.Metadata), nil
}

// ByID returns hotel.ErrNotFound when the hotel API has no such hotel.
func (s *HotelMetadataSource) ByID(ctx context.Context, hotelID string) (*hotel.Metadata, error) {
	cacheKey := hotelCacheKey(hotelID)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		var metadata hotel.Metadata
		if err := json.Unmarshal(cached, &metadata); err == nil {
			return &metadata, nil
		}
		s.logger.Warn("Failed to unmarshal cached hotel", constants.HotelId, hotelID)
	}

	value, err := s.shared(ctx, cacheKey, func(ctx context.Context) (any, error) {
		raw, err := s.provider.Get(ctx, hotel.HotelEndpoint(hotelID), nil)
		if err != nil {
			if upstreamErr, ok := hotel.AsUpstreamError(err); ok && upstreamErr.IsNotFound() {
				return nil, hotel.ErrNotFound
			}
			return nil, fmt.Errorf("failed to fetch hotel %s: %w", hotelID, err)
		}

		metadata, err := hotel.DecodeMetadata(raw)
		if err != nil {
			return nil, err
		}

		s.writeCache(ctx, cacheKey, metadata)
		return metadata, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*hotel.Metadata), nil
}

// shared runs fetch once per key for all concurrent callers. The flight is detached
// from any single caller's cancellation; each caller still stops waiting when its own
// ctx ends. The upstream call stays bounded by the hotel API client timeout.
func (s *HotelMetadataSource) shared(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	flightCtx := context.WithoutCancel(ctx)
	results := s.group.DoChan(key, func() (any, error) {
		return fetch(flightCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		return result.Val, result.Err
	}
}

func (s *HotelMetadataSource) readCache(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (s *HotelMetadataSource) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Failed to marshal hotel metadata for cache", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Failed to set hotel metadata cache", "key", key, "error", err)
	}
}
