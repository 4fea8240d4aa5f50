// models/pickup_hotel.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type PickupHotel struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string  `gorm:"size:255;column:hotel" json:"hotel"`
	SubLocation *string `gorm:"size:255;column:sub_location" json:"sub_location,omitempty"`
	PickupTime  string  `gorm:"size:16;column:pickup_time" json:"pickup_time,omitempty"`
}
