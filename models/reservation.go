// models/reservation.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Reservation struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ProductID string `gorm:"index:idx_reservations_product_date;size:64;column:product_id" json:"product_id"`
	TourDate  string `gorm:"index:idx_reservations_product_date;size:10;column:tour_date" json:"tour_date"`

	CustomerID    string  `gorm:"index;size:64;column:customer_id" json:"customer_id"`
	PickupHotelID *string `gorm:"size:64;column:pickup_hotel_id" json:"pickup_hotel_id,omitempty"`

	Adults int `gorm:"column:adults;default:1" json:"adults"`
	Child  int `gorm:"column:child;default:0" json:"child"`
	Infant int `gorm:"column:infant;default:0" json:"infant"`

	// Selected product option; primary path for choice classification is the
	// reservation_choices join table, this column is the fallback.
	ChoiceOptionID *string `gorm:"size:64;column:choice_option_id" json:"choice_option_id,omitempty"`

	Status string `gorm:"size:64" json:"status,omitempty"`

	Customer    *Customer    `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	PickupHotel *PickupHotel `gorm:"foreignKey:PickupHotelID;references:ID" json:"pickup_hotel,omitempty"`
}

// PeopleCount is the passenger total a reservation contributes to a tour.
func (r *Reservation) PeopleCount() int {
	return r.Adults + r.Child + r.Infant
}
