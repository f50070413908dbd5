package routes

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vitalaid/vitalaid/controllers"
	"vitalaid/vitalaid/types"
)

func FirstAidRoutes(ctrl *controllers.FirstAidController, manuals *controllers.ManualController) chi.Router {
	r := chi.NewRouter()

	// POST /first-aid/chat : initial consultation, returns advice + session id
	r.Post("/chat", func(w http.ResponseWriter, req *http.Request) {
		var body types.AdviceRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
		result, err := ctrl.StartChat(req.Context(), body.EmergencyType, body.UserMessage)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeSuccess(w, result)
	})

	// GET /first-aid/chat/{sessionId} : full transcript, chronological
	r.Get("/chat/{sessionId}", func(w http.ResponseWriter, req *http.Request) {
		sessionID := chi.URLParam(req, "sessionId")
		messages, err := ctrl.GetChatMessages(req.Context(), sessionID)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeSuccess(w, messages)
	})

	// POST /first-aid/chat/{sessionId} : follow-up turn on an existing session
	r.Post("/chat/{sessionId}", func(w http.ResponseWriter, req *http.Request) {
		sessionID := chi.URLParam(req, "sessionId")
		var body types.ContinueRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
		result, err := ctrl.ContinueChat(req.Context(), sessionID, body.UserMessage)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeSuccess(w, result)
	})

	// GET /first-aid/manuals : every curated manual
	r.Get("/manuals", func(w http.ResponseWriter, req *http.Request) {
		result, err := manuals.ListManuals(req.Context())
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeSuccess(w, result)
	})

	// GET /first-aid/manuals/{emergencyType} : manuals for one emergency type
	r.Get("/manuals/{emergencyType}", func(w http.ResponseWriter, req *http.Request) {
		emergencyType := chi.URLParam(req, "emergencyType")
		result, err := manuals.GetManualsByType(req.Context(), emergencyType)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeSuccess(w, result)
	})

	return r
}
