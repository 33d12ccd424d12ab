package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingData struct {
	ID string `gorm:"primaryKey;type:varchar(36)"`

	UserID        string `gorm:"not null;type:varchar(255);index:idx_bookings_user_id"`
	HotelID       string `gorm:"not null;type:varchar(64)"`
	DestinationID string `gorm:"type:varchar(64)"`
	RoomKey       string `gorm:"not null;type:varchar(255)"`

	Checkin  string `gorm:"not null;type:varchar(10)"`
	Checkout string `gorm:"not null;type:varchar(10)"`
	Guests   string `gorm:"not null;type:varchar(32)"`

	Price    float64 `gorm:"type:decimal(12,2)"`
	Currency string  `gorm:"type:varchar(3)"`

	Guest           datatypes.JSON `gorm:"type:jsonb"`
	SpecialRequests string         `gorm:"type:text"`
	Status          string         `gorm:"type:varchar(20);default:confirmed;index:idx_bookings_status"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (b *BookingData) BeforeCreate(_ *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()

	if b.Status == "" {
		b.Status = "confirmed"
	}
	return
}

func (b *BookingData) BeforeUpdate(_ *gorm.DB) (err error) {
	b.UpdatedAt = time.Now()
	return
}

func (b *BookingData) TableName() string {
	return "bookings"
}

func (b *BookingData) SetGuest(guest map[string]string) error {
	if len(guest) == 0 {
		b.Guest = datatypes.JSON("{}")
		return nil
	}
	data, err := json.Marshal(guest)
	if err != nil {
		return err
	}
	b.Guest = data
	return nil
}

func (b *BookingData) GetGuest() (map[string]string, error) {
	guest := make(map[string]string)
	if len(b.Guest) == 0 {
		return guest, nil
	}
	if err := json.Unmarshal(b.Guest, &guest); err != nil {
		return nil, err
	}
	return guest, nil
}
