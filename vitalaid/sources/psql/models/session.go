package models

import "time"

// ChatSession is created once at the first turn of a consultation and never
// mutated afterwards.
type ChatSession struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	EmergencyType string    `json:"emergencyType" gorm:"type:varchar(50);not null;index"`
	CreatedAt     time.Time `json:"createdAt" gorm:"not null"`
}
