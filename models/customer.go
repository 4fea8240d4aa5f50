// models/customer.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name  string `gorm:"size:255" json:"name"`
	Email string `gorm:"size:255;index" json:"email,omitempty"`
	Phone string `gorm:"size:64" json:"phone,omitempty"`

	// Free-text language code from the booking channel ("ko", "en", "KR", ...).
	Language string `gorm:"size:32" json:"language,omitempty"`
}
