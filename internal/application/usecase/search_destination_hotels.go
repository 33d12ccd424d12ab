package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/victoragudo/hotel-booking-aggregator/internal/application/polling"
	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/constants"
)

// SearchDefaults are the upstream parameters appended to every destination price poll.
type SearchDefaults struct {
	PartnerID   int
	Currency    string
	CountryCode string
	LandingPage string
	ProductType string
	Lang        string
}

func DefaultSearchDefaults() SearchDefaults {
	return SearchDefaults{
		PartnerID:   1089,
		Currency:    "USD",
		CountryCode: "US",
		LandingPage: "wl-acme-earn",
		ProductType: "earn",
		Lang:        "en_US",
	}
}

func (d SearchDefaults) params() hotel.QueryParams {
	return hotel.QueryParams{
		"partner_id":   d.PartnerID,
		"currency":     d.Currency,
		"country_code": d.CountryCode,
		"landing_page": d.LandingPage,
		"product_type": d.ProductType,
		"lang":         d.Lang,
	}
}

type DestinationSearchQuery struct {
	DestinationID string
	Checkin       string
	Checkout      string
	Guests        string
}

func (q DestinationSearchQuery) params() hotel.QueryParams {
	return hotel.QueryParams{
		"destination_id": q.DestinationID,
		"checkin":        q.Checkin,
		"checkout":       q.Checkout,
		"guests":         q.Guests,
	}
}

// SearchDestinationHotelsUseCase fetches metadata and polls prices for a destination
// concurrently and merges them. Failures on either side degrade to an empty result.
type SearchDestinationHotelsUseCase struct {
	metadata *HotelMetadataSource
	poller   *polling.Poller
	defaults SearchDefaults
	logger   *slog.Logger
}

func NewSearchDestinationHotelsUseCase(
	metadata *HotelMetadataSource,
	poller *polling.Poller,
	defaults SearchDefaults,
	logger *slog.Logger,
) *SearchDestinationHotelsUseCase {
	return &SearchDestinationHotelsUseCase{
		metadata: metadata,
		poller:   poller,
		defaults: defaults,
		logger:   logger,
	}
}

func (uc *SearchDestinationHotelsUseCase) Execute(ctx context.Context, query DestinationSearchQuery) []hotel.MergedHotel {
	startTime := time.Now()

	var (
		metadataResult Result[[]hotel.Metadata]
		pricesResult   Result[[]hotel.PriceQuote]
		wg             sync.WaitGroup
	)

	// Each side reports through its Result; neither failure cancels the other.
	wg.Go(func() {
		metadataResult = uc.fetchMetadata(ctx, query.DestinationID)
	})
	wg.Go(func() {
		pricesResult = uc.fetchPrices(ctx, query)
	})
	wg.Wait()

	if !metadataResult.IsOk() {
		uc.logger.Error("Failed to fetch hotel metadata", constants.DestinationId, query.DestinationID, "error", metadataResult.Err)
	}
	if !pricesResult.IsOk() {
		uc.logger.Error("Failed to fetch hotel prices", constants.DestinationId, query.DestinationID, "error", pricesResult.Err)
	}

	metadata := metadataResult.ValueOr(nil)
	quotes := pricesResult.ValueOr(nil)
	if len(metadata) == 0 || len(quotes) == 0 {
		uc.logger.Info("No hotels to merge for destination",
			constants.DestinationId, query.DestinationID,
			"metadata_count", len(metadata),
			"price_count", len(quotes),
			"duration", time.Since(startTime))
		return []hotel.MergedHotel{}
	}

	merged := hotel.Merge(metadata, quotes)
	uc.logger.Info("Destination search completed",
		constants.DestinationId, query.DestinationID,
		"results", len(merged),
		"duration", time.Since(startTime))
	return merged
}

func (uc *SearchDestinationHotelsUseCase) fetchMetadata(ctx context.Context, destinationID string) Result[[]hotel.Metadata] {
	list, err := uc.metadata.ByDestination(ctx, destinationID)
	if err != nil {
		return Fail[[]hotel.Metadata](err)
	}
	return Ok(list)
}

func (uc *SearchDestinationHotelsUseCase) fetchPrices(ctx context.Context, query DestinationSearchQuery) Result[[]hotel.PriceQuote] {
	params := query.params().With(uc.defaults.params())
	envelope, err := uc.poller.PollUntilCompleted(ctx, hotel.PricesEndpoint(), params)
	if err != nil {
		return Fail[[]hotel.PriceQuote](err)
	}
	return Ok(envelope.Hotels)
}
