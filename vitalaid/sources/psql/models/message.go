package models

import "time"

const (
	SenderUser      = "USER"
	SenderAssistant = "ASSISTANT"
)

// ChatMessage rows are immutable; a turn always writes a USER row and an
// ASSISTANT row together.
type ChatMessage struct {
	ID        string       `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID string       `json:"sessionId" gorm:"type:uuid;not null;index"`
	Session   *ChatSession `json:"-" gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE"`
	Sender    string       `json:"sender" gorm:"type:varchar(16);not null"`
	Message   string       `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time    `json:"createdAt" gorm:"not null;index"`
}
