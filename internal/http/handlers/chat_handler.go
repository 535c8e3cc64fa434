// README: Chat session handlers (start, resume, preferences, one dialogue turn).
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripkit/internal/modules/dialogue"
	"tripkit/internal/modules/recommend"
	"tripkit/internal/modules/session"
)

type ChatHandler struct {
	sessions *session.Service
}

func NewChatHandler(sessions *session.Service) *ChatHandler {
	return &ChatHandler{sessions: sessions}
}

type sessionResp struct {
	*session.Session
	Replaced bool `json:"replaced"`
}

type chatReq struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type chatResp struct {
	Reply         string            `json:"reply"`
	CurrentStep   dialogue.Step     `json:"currentStep"`
	NextStep      dialogue.Step     `json:"nextStep"`
	IsComplete    bool              `json:"isComplete"`
	CollectedData dialogue.Profile  `json:"collectedData"`
	RejectedItems dialogue.Rejected `json:"rejectedItems"`
	SessionID     string            `json:"sessionId"`
	Error         string            `json:"error,omitempty"`
}

// Start handles POST /api/sessions.
func (h *ChatHandler) Start(c *gin.Context) {
	sess, err := h.sessions.Start(c.Request.Context())
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, sessionResp{Session: sess})
}

// Resume handles GET /api/sessions/:id. Unknown or expired ids get a fresh session.
func (h *ChatHandler) Resume(c *gin.Context) {
	id := c.Param("id")
	if !isValidSessionID(id) {
		id = ""
	}
	sess, replaced, err := h.sessions.Resume(c.Request.Context(), id)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sessionResp{Session: sess, Replaced: replaced})
}

// SetPreferences handles PUT /api/sessions/:id/preferences.
func (h *ChatHandler) SetPreferences(c *gin.Context) {
	id := c.Param("id")
	if !isValidSessionID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	var prefs recommend.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	sess, err := h.sessions.SetPreferences(c.Request.Context(), id, prefs)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sessionResp{Session: sess})
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID != "" && !isValidSessionID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}

	r, err := h.sessions.Send(c.Request.Context(), session.SendCommand{
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		writeSessionError(c, err)
		return
	}

	resp := chatResp{
		Reply:         r.Reply,
		CurrentStep:   r.CurrentStep,
		NextStep:      r.NextStep,
		IsComplete:    r.IsComplete,
		CollectedData: r.Session.CollectedData,
		RejectedItems: r.Session.RejectedItems,
		SessionID:     r.Session.ID,
	}
	if r.Failed {
		resp.Error = "dialogue engine unavailable"
	}
	writeJSON(c, http.StatusOK, resp)
}
