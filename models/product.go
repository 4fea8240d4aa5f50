// models/product.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"size:255" json:"name"`
	Category string `gorm:"size:128" json:"category,omitempty"`
	Status   string `gorm:"size:64" json:"status,omitempty"`
}
