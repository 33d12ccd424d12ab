package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/constants"
)

type GetHotelByIDUseCase struct {
	metadata *HotelMetadataSource
	logger   *slog.Logger
}

func NewGetHotelByIDUseCase(metadata *HotelMetadataSource, logger *slog.Logger) *GetHotelByIDUseCase {
	return &GetHotelByIDUseCase{
		metadata: metadata,
		logger:   logger,
	}
}

func (uc *GetHotelByIDUseCase) Execute(ctx context.Context, hotelID string) (*hotel.Metadata, error) {
	startTime := time.Now()

	uc.logger.Info("Getting hotel by ID", constants.HotelId, hotelID)

	found, err := uc.metadata.ByID(ctx, hotelID)
	if err != nil {
		uc.logger.Error("Failed to fetch hotel", constants.HotelId, hotelID, "error", err)
		return nil, err
	}

	uc.logger.Info("Hotel fetched", constants.HotelId, hotelID, "duration", time.Since(startTime))
	return found, nil
}
