package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vitalaid/vitalaid/controllers"
	"vitalaid/vitalaid/services/llm"
	"vitalaid/vitalaid/sources/psql/dao"
	"vitalaid/vitalaid/sources/psql/models"
	"vitalaid/vitalaid/types"
	"vitalaid/vitalaid/utils/logging"
)

func TestMain(m *testing.M) {
	logging.InitLogger()
	os.Exit(m.Run())
}

const successEnvelope = `{"candidates": [{"content": {"parts": [{"text": "{\"c\":\"Cool the area under running water\",\"recommendedAction\":\"seek care\",\"confidence\":0.9,\"blogLinks\":[\"https://a.example\",\"https://b.example\"]}"}]}}]}`

func setupRouter(t *testing.T) (chi.Router, *llm.MockClient, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to grab sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.ChatSession{}, &models.ChatMessage{}, &models.EmergencyManual{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	mock := &llm.MockClient{Response: successEnvelope}
	firstAidCtrl := controllers.NewFirstAidController(dao.NewSessionDAO(db), mock)
	manualCtrl := controllers.NewManualController(dao.NewManualDAO(db))

	r := chi.NewRouter()
	r.Mount("/first-aid", FirstAidRoutes(firstAidCtrl, manualCtrl))
	r.Mount("/health", HealthRoutes(controllers.NewHealthController()))
	return r, mock, db
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type apiEnvelope struct {
	Result  string          `json:"result"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v (%s)", err, rr.Body.String())
	}
	return env
}

func TestPostChatSuccess(t *testing.T) {
	r, _, _ := setupRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/first-aid/chat", types.AdviceRequest{
		EmergencyType: "BURNS",
		UserMessage:   "my hand is badly burned",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	env := decodeEnvelope(t, rr)
	if env.Result != "SUCCESS" {
		t.Errorf("expected SUCCESS result, got %q", env.Result)
	}
	var result types.AdviceResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("data is not an AdviceResult: %v", err)
	}
	if result.SessionID == "" {
		t.Errorf("advice result must carry the new session id")
	}
	if len(result.BlogLinks) != 2 {
		t.Errorf("expected 2 blog links, got %d", len(result.BlogLinks))
	}
}

func TestPostChatInvalidBody(t *testing.T) {
	r, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/first-aid/chat", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if env := decodeEnvelope(t, rr); env.Code != "BAD_REQUEST" {
		t.Errorf("expected BAD_REQUEST code, got %q", env.Code)
	}
}

func TestPostChatUnknownEmergencyType(t *testing.T) {
	r, _, _ := setupRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/first-aid/chat", types.AdviceRequest{
		EmergencyType: "VIBES",
		UserMessage:   "help",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if env := decodeEnvelope(t, rr); env.Code != "BAD_REQUEST" {
		t.Errorf("expected BAD_REQUEST code, got %q", env.Code)
	}
}

func TestGetMessagesUnknownSession(t *testing.T) {
	r, _, _ := setupRouter(t)

	rr := doJSON(t, r, http.MethodGet, "/first-aid/chat/00000000-0000-0000-0000-000000000000", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if env := decodeEnvelope(t, rr); env.Code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND code, got %q", env.Code)
	}
}

func TestChatRoundTripTranscript(t *testing.T) {
	r, _, _ := setupRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/first-aid/chat", types.AdviceRequest{
		EmergencyType: "BURNS",
		UserMessage:   "my hand is badly burned",
	})
	var started types.AdviceResult
	env := decodeEnvelope(t, rr)
	if err := json.Unmarshal(env.Data, &started); err != nil {
		t.Fatalf("data is not an AdviceResult: %v", err)
	}

	rr = doJSON(t, r, http.MethodPost, "/first-aid/chat/"+started.SessionID, types.ContinueRequest{
		UserMessage: "the blister burst",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("continue failed with %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, r, http.MethodGet, "/first-aid/chat/"+started.SessionID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("transcript fetch failed with %d", rr.Code)
	}
	var messages []models.ChatMessage
	env = decodeEnvelope(t, rr)
	if err := json.Unmarshal(env.Data, &messages); err != nil {
		t.Fatalf("data is not a message list: %v", err)
	}
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	wantSenders := []string{models.SenderUser, models.SenderAssistant, models.SenderUser, models.SenderAssistant}
	for i, msg := range messages {
		if msg.Sender != wantSenders[i] {
			t.Errorf("message %d: expected %s, got %s", i, wantSenders[i], msg.Sender)
		}
	}
}

func TestUpstreamFailureMapsToBadGateway(t *testing.T) {
	r, mock, db := setupRouter(t)
	mock.Err = types.NewFailure(types.UpstreamUnavailable, "gemini unavailable after retries")

	rr := doJSON(t, r, http.MethodPost, "/first-aid/chat", types.AdviceRequest{
		EmergencyType: "BURNS",
		UserMessage:   "my hand is badly burned",
	})
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
	if env := decodeEnvelope(t, rr); env.Code != "UPSTREAM_UNAVAILABLE" {
		t.Errorf("expected UPSTREAM_UNAVAILABLE code, got %q", env.Code)
	}

	var count int64
	if err := db.Model(&models.ChatMessage{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("failed request must not persist messages")
	}
}

func TestListManuals(t *testing.T) {
	r, _, db := setupRouter(t)
	manual := models.EmergencyManual{
		EmergencyType: "BURNS",
		Title:         "Scald burns",
		Description:   "Hot liquid burns",
		Steps:         "1. Cool under running water.",
		Warning:       "Do not apply ice.",
		UpdatedAt:     time.Now().UTC(),
	}
	if err := db.Create(&manual).Error; err != nil {
		t.Fatalf("failed to seed manual: %v", err)
	}

	rr := doJSON(t, r, http.MethodGet, "/first-aid/manuals", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var manuals []models.EmergencyManual
	env := decodeEnvelope(t, rr)
	if err := json.Unmarshal(env.Data, &manuals); err != nil {
		t.Fatalf("data is not a manual list: %v", err)
	}
	if len(manuals) != 1 || manuals[0].Title != "Scald burns" {
		t.Errorf("unexpected manuals payload: %+v", manuals)
	}

	rr = doJSON(t, r, http.MethodGet, "/first-aid/manuals/NONSENSE", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown manual type should map to 400, got %d", rr.Code)
	}
}

func TestHealthRoute(t *testing.T) {
	r, _, _ := setupRouter(t)

	rr := doJSON(t, r, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != `{"status": "ok"}` {
		t.Errorf("unexpected health body: %q", rr.Body.String())
	}
}
