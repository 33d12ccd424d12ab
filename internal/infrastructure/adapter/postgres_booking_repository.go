package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/booking"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/constants"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/entities"
)

const USER_ID = "user_id"

type PostgresBookingRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPostgresBookingRepository(db *gorm.DB, logger *slog.Logger) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresBookingRepository) Find(ctx context.Context, userID string) ([]*booking.Booking, error) {
	var models []entities.BookingData

	err := r.db.WithContext(ctx).
		Where(USER_ID+" = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		r.logger.Error("Failed to find bookings", constants.UserId, userID, "error", err)
		return nil, fmt.Errorf("failed to find bookings for user %s: %w", userID, err)
	}

	bookings := make([]*booking.Booking, 0, len(models))
	for i := range models {
		b, err := r.convertModelToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *PostgresBookingRepository) FindOne(ctx context.Context, id, userID string) (*booking.Booking, error) {
	var model entities.BookingData

	err := r.db.WithContext(ctx).
		Where("id = ? AND "+USER_ID+" = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrNotFound
		}
		r.logger.Error("Failed to find booking", constants.BookingId, id, constants.UserId, userID, "error", err)
		return nil, fmt.Errorf("failed to find booking %s: %w", id, err)
	}

	return r.convertModelToDomain(&model)
}

func (r *PostgresBookingRepository) InsertOne(ctx context.Context, b *booking.Booking) error {
	model, err := r.convertDomainToModel(b)
	if err != nil {
		return fmt.Errorf("failed to convert domain to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Error("Failed to insert booking", constants.BookingId, b.ID, "error", err)
		return fmt.Errorf("failed to insert booking %s: %w", b.ID, err)
	}

	b.ID = model.ID
	b.Status = model.Status
	b.CreatedAt = model.CreatedAt
	r.logger.Debug("Booking saved successfully", constants.BookingId, b.ID)
	return nil
}

func (r *PostgresBookingRepository) convertDomainToModel(b *booking.Booking) (*entities.BookingData, error) {
	model := &entities.BookingData{
		ID:              b.ID,
		UserID:          b.UserID,
		HotelID:         b.HotelID,
		DestinationID:   b.DestinationID,
		RoomKey:         b.RoomKey,
		Checkin:         b.Checkin,
		Checkout:        b.Checkout,
		Guests:          b.Guests,
		Price:           b.Price,
		Currency:        b.Currency,
		SpecialRequests: b.SpecialRequests,
		Status:          b.Status,
	}

	guest := map[string]string{
		"first_name": b.Guest.FirstName,
		"last_name":  b.Guest.LastName,
		"email":      b.Guest.Email,
	}
	if b.Guest.Phone != "" {
		guest["phone"] = b.Guest.Phone
	}
	if err := model.SetGuest(guest); err != nil {
		return nil, fmt.Errorf("failed to encode guest: %w", err)
	}
	return model, nil
}

func (r *PostgresBookingRepository) convertModelToDomain(model *entities.BookingData) (*booking.Booking, error) {
	guest, err := model.GetGuest()
	if err != nil {
		return nil, fmt.Errorf("failed to decode guest for booking %s: %w", model.ID, err)
	}

	return &booking.Booking{
		ID:            model.ID,
		UserID:        model.UserID,
		HotelID:       model.HotelID,
		DestinationID: model.DestinationID,
		RoomKey:       model.RoomKey,
		Checkin:       model.Checkin,
		Checkout:      model.Checkout,
		Guests:        model.Guests,
		Price:         model.Price,
		Currency:      model.Currency,
		Guest: booking.Guest{
			FirstName: guest["first_name"],
			LastName:  guest["last_name"],
			Email:     guest["email"],
			Phone:     guest["phone"],
		},
		SpecialRequests: model.SpecialRequests,
		Status:          model.Status,
		CreatedAt:       model.CreatedAt,
	}, nil
}
