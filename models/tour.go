// models/tour.go
package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Tour struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ProductID string `gorm:"index:idx_tours_product_date;size:64;column:product_id" json:"product_id"`
	TourDate  string `gorm:"index:idx_tours_product_date;size:10;column:tour_date" json:"tour_date"`

	// Team members are keyed by email, see TeamMember.
	GuideEmail     *string `gorm:"size:255;column:tour_guide_email" json:"tour_guide_email,omitempty"`
	AssistantEmail *string `gorm:"size:255;column:assistant_email" json:"assistant_email,omitempty"`
	VehicleID      *string `gorm:"size:64;column:vehicle_id" json:"vehicle_id,omitempty"`

	// Ordered array of reservation ids carried by this tour.
	ReservationIDs datatypes.JSON `gorm:"column:reservation_ids" json:"reservation_ids,omitempty"`

	Status string `gorm:"size:64" json:"status,omitempty"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID;references:ID" json:"vehicle,omitempty"`
}

// ReservationIDList decodes the reservation_ids JSON column. A missing or
// malformed column decodes to an empty list rather than failing the caller.
func (t *Tour) ReservationIDList() []string {
	if len(t.ReservationIDs) == 0 {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal(t.ReservationIDs, &ids); err != nil {
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

// SetReservationIDList encodes ids back into the reservation_ids column.
func (t *Tour) SetReservationIDList(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	raw, _ := json.Marshal(ids)
	t.ReservationIDs = datatypes.JSON(raw)
}
