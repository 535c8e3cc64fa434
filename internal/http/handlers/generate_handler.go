// README: Image generation handlers (explicit request or from a session's travel profile).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripkit/internal/modules/imagegen"
	"tripkit/internal/modules/session"
)

type GenerateHandler struct {
	images   *imagegen.Service
	sessions *session.Service
}

func NewGenerateHandler(images *imagegen.Service, sessions *session.Service) *GenerateHandler {
	return &GenerateHandler{images: images, sessions: sessions}
}

type generateErrorResp struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type sessionGenerateReq struct {
	AdditionalPrompt string `json:"additionalPrompt"`
}

// Generate handles POST /api/generate.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req imagegen.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	h.run(c, req)
}

// GenerateForSession handles POST /api/sessions/:id/generate.
func (h *GenerateHandler) GenerateForSession(c *gin.Context) {
	id := c.Param("id")
	if !isValidSessionID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	var body sessionGenerateReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}

	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	if sess.CollectedData.City == "" && sess.CollectedData.SpotName == "" {
		writeError(c, http.StatusConflict, "travel profile has no destination yet")
		return
	}
	h.run(c, imagegen.RequestFromProfile(sess.CollectedData, body.AdditionalPrompt))
}

func (h *GenerateHandler) run(c *gin.Context, req imagegen.GenerateRequest) {
	resp, err := h.images.Generate(c.Request.Context(), req)
	if err != nil {
		var genErr *imagegen.GenerationError
		switch {
		case errors.Is(err, imagegen.ErrInvalidInput):
			writeError(c, http.StatusBadRequest, err.Error())
		case errors.As(err, &genErr):
			writeJSON(c, http.StatusInternalServerError, generateErrorResp{
				Status:  imagegen.StatusError,
				Error:   "GENERATION_FAILED",
				Message: genErr.Message,
			})
		default:
			writeError(c, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(c, http.StatusOK, resp)
}
