package models

import "time"

// EmergencyManual is curated static first-aid content, read-only from the
// API's point of view.
type EmergencyManual struct {
	ID            uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	EmergencyType string    `json:"emergencyType" gorm:"type:varchar(50);not null;index"`
	Title         string    `json:"title" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Steps         string    `json:"steps" gorm:"type:text"`
	Warning       string    `json:"warning" gorm:"type:text"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
