// models/vehicle.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Vehicle struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"size:255;column:vehicle_number" json:"vehicle_number"`
	VehicleType string `gorm:"size:128;column:vehicle_type" json:"vehicle_type,omitempty"`

	// Seat count. Nil means capacity unknown; such vehicles impose no
	// passenger ceiling on their tour.
	Capacity *int `gorm:"column:capacity" json:"capacity,omitempty"`

	Status string `gorm:"size:64" json:"status,omitempty"`
}

// SeatsReservedForStaff are held back for the guide and assistant when
// deriving a tour's passenger ceiling from vehicle capacity.
const SeatsReservedForStaff = 2
