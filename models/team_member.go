// models/team_member.go
package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TeamMember struct {
	// Team members are referenced by email everywhere (tours, rosters).
	Email     string         `gorm:"primaryKey;size:255" json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"size:255" json:"name_ko"`
	Position string `gorm:"size:128" json:"position,omitempty"`

	// Language codes this member can guide in, e.g. ["ko","en"].
	Languages datatypes.JSON `gorm:"column:languages" json:"languages,omitempty"`

	IsActive bool `gorm:"column:is_active;default:true" json:"is_active"`
}

// LanguageList decodes the languages JSON column, empty on malformed data.
func (m *TeamMember) LanguageList() []string {
	if len(m.Languages) == 0 {
		return []string{}
	}
	var langs []string
	if err := json.Unmarshal(m.Languages, &langs); err != nil {
		return []string{}
	}
	if langs == nil {
		return []string{}
	}
	return langs
}

// SetLanguageList encodes langs into the languages column.
func (m *TeamMember) SetLanguageList(langs []string) {
	if langs == nil {
		langs = []string{}
	}
	raw, _ := json.Marshal(langs)
	m.Languages = datatypes.JSON(raw)
}
