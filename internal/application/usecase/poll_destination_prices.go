package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/victoragudo/hotel-booking-aggregator/internal/application/polling"
	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/constants"
)

// PollDestinationPricesUseCase exposes the raw completed price envelope for a destination.
// Unlike the destination search it surfaces polling failures to the caller.
type PollDestinationPricesUseCase struct {
	poller   *polling.Poller
	defaults SearchDefaults
	logger   *slog.Logger
}

func NewPollDestinationPricesUseCase(poller *polling.Poller, defaults SearchDefaults, logger *slog.Logger) *PollDestinationPricesUseCase {
	return &PollDestinationPricesUseCase{
		poller:   poller,
		defaults: defaults,
		logger:   logger,
	}
}

func (uc *PollDestinationPricesUseCase) Execute(ctx context.Context, query DestinationSearchQuery) (*hotel.PriceEnvelope, error) {
	params := query.params().With(uc.defaults.params())

	envelope, err := uc.poller.PollUntilCompleted(ctx, hotel.PricesEndpoint(), params)
	if err != nil {
		uc.logger.Warn("Destination price poll failed", constants.DestinationId, query.DestinationID, "error", err)
		return nil, fmt.Errorf("failed to poll prices for destination %s: %w", query.DestinationID, err)
	}
	return envelope, nil
}
