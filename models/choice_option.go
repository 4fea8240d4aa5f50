// models/choice_option.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// ChoiceOption is a bookable product option (canyon choice) whose name feeds
// the L/X/other classification.
type ChoiceOption struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OptionKey string `gorm:"size:128;column:option_key" json:"option_key"`
	NameKo    string `gorm:"size:255;column:name_ko" json:"name_ko,omitempty"`
	NameEn    string `gorm:"size:255;column:name_en" json:"name_en,omitempty"`
}

// ReservationChoice links a reservation to its selected option. This join
// table is the primary path for choice resolution; Reservation.ChoiceOptionID
// is the fallback.
type ReservationChoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ReservationID string `gorm:"index;size:64;column:reservation_id" json:"reservation_id"`
	OptionID      string `gorm:"size:64;column:option_id" json:"option_id"`

	Option ChoiceOption `gorm:"foreignKey:OptionID;references:ID" json:"option,omitempty"`
}
