package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vitalaid/vitalaid/sources/psql/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionDAO struct {
	DB *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{DB: db}
}

func (dao *SessionDAO) CreateSession(ctx context.Context, emergencyType string) (*models.ChatSession, error) {
	session := &models.ChatSession{
		ID:            uuid.New().String(),
		EmergencyType: emergencyType,
		CreatedAt:     time.Now().UTC(),
	}
	if err := dao.DB.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (dao *SessionDAO) GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := dao.DB.WithContext(ctx).First(&session, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// AppendTurn records one user/assistant exchange. Both rows are written in a
// single transaction: a failed turn leaves no trace.
func (dao *SessionDAO) AppendTurn(ctx context.Context, sessionID, userText, assistantText string) (*models.ChatMessage, *models.ChatMessage, error) {
	userMsg := newMessage(sessionID, models.SenderUser, userText)
	aiMsg := newMessage(sessionID, models.SenderAssistant, assistantText)

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := sessionExists(tx, sessionID); err != nil {
			return err
		}
		if err := tx.Create(userMsg).Error; err != nil {
			return err
		}
		return tx.Create(aiMsg).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return userMsg, aiMsg, nil
}

// StartConversation creates the session together with its first turn, so a
// storage failure cannot leave an empty orphan session behind.
func (dao *SessionDAO) StartConversation(ctx context.Context, emergencyType, userText, assistantText string) (*models.ChatSession, error) {
	session := &models.ChatSession{
		ID:            uuid.New().String(),
		EmergencyType: emergencyType,
		CreatedAt:     time.Now().UTC(),
	}
	userMsg := newMessage(session.ID, models.SenderUser, userText)
	aiMsg := newMessage(session.ID, models.SenderAssistant, assistantText)

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		if err := tx.Create(userMsg).Error; err != nil {
			return err
		}
		return tx.Create(aiMsg).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (dao *SessionDAO) ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	if err := sessionExists(dao.DB.WithContext(ctx), sessionID); err != nil {
		return nil, err
	}
	var messages []models.ChatMessage
	// sender DESC keeps USER ahead of ASSISTANT when timestamps collide.
	err := dao.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, sender DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func newMessage(sessionID, sender, text string) *models.ChatMessage {
	return &models.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Sender:    sender,
		Message:   text,
		CreatedAt: time.Now().UTC(),
	}
}

func sessionExists(db *gorm.DB, sessionID string) error {
	var count int64
	if err := db.Model(&models.ChatSession{}).Where("id = ?", sessionID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrSessionNotFound
	}
	return nil
}
