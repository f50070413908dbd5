package controllers

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"vitalaid/vitalaid/services/advisor"
	"vitalaid/vitalaid/services/llm"
	"vitalaid/vitalaid/sources/psql/dao"
	"vitalaid/vitalaid/sources/psql/models"
	"vitalaid/vitalaid/types"
	"vitalaid/vitalaid/utils/logging"
)

// FirstAidController orchestrates one advisory turn: prompt, upstream call,
// parse, confidence blend, atomic persist.
type FirstAidController struct {
	sessions *dao.SessionDAO
	client   llm.Client
	locks    sessionLocks
}

func NewFirstAidController(sessions *dao.SessionDAO, client llm.Client) *FirstAidController {
	return &FirstAidController{sessions: sessions, client: client}
}

// StartChat handles the first consultation turn. The session row is created
// together with the turn after the pipeline succeeds, so a failed upstream
// call leaves nothing behind; the fresh session id rides back on the result.
func (c *FirstAidController) StartChat(ctx context.Context, emergencyType, userMessage string) (*types.AdviceResult, error) {
	et, ok := types.ParseEmergencyType(emergencyType)
	if !ok {
		return nil, types.NewFailure(types.InvalidInput, "unknown emergencyType")
	}
	if strings.TrimSpace(userMessage) == "" {
		return nil, types.NewFailure(types.InvalidInput, "userMessage is required")
	}

	result, err := c.runPipeline(ctx, et, userMessage, false)
	if err != nil {
		return nil, err
	}

	session, err := c.sessions.StartConversation(ctx, string(et), userMessage, result.Content)
	if err != nil {
		return nil, err
	}
	result.SessionID = session.ID

	logging.AppLogger.Info("consultation started",
		zap.String("session_id", session.ID),
		zap.String("emergency_type", string(et)))
	return result, nil
}

// ContinueChat handles a follow-up turn on an existing session. Turns on the
// same session are serialized for the whole exchange so messages land in the
// order requests were accepted; other sessions are untouched by the lock.
func (c *FirstAidController) ContinueChat(ctx context.Context, sessionID, userMessage string) (*types.AdviceResult, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, types.NewFailure(types.InvalidInput, "userMessage is required")
	}

	lock := c.locks.acquire(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, mapSessionErr(err)
	}

	result, err := c.runPipeline(ctx, types.EmergencyType(session.EmergencyType), userMessage, true)
	if err != nil {
		return nil, err
	}

	if _, _, err := c.sessions.AppendTurn(ctx, sessionID, userMessage, result.Content); err != nil {
		return nil, mapSessionErr(err)
	}
	return result, nil
}

// GetChatMessages returns the full transcript, chronological.
func (c *FirstAidController) GetChatMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	messages, err := c.sessions.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, mapSessionErr(err)
	}
	return messages, nil
}

func (c *FirstAidController) runPipeline(ctx context.Context, et types.EmergencyType, userMessage string, followUp bool) (*types.AdviceResult, error) {
	prompt := advisor.BuildPrompt(et, userMessage, followUp)

	raw, err := c.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result, err := advisor.ParseAdvice(raw, et)
	if err != nil {
		return nil, err
	}

	evaluated := advisor.EvaluateConfidence(result.Content, et)
	result.Confidence = advisor.BlendConfidence(result.Confidence, evaluated)
	return &result, nil
}

func mapSessionErr(err error) error {
	if errors.Is(err, dao.ErrSessionNotFound) {
		return types.WrapFailure(types.NotFound, "session not found", err)
	}
	return err
}

// sessionLocks hands out one mutex per session id.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *sessionLocks) acquire(sessionID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := l.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[sessionID] = lock
	}
	return lock
}
