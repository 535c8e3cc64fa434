// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripkit/internal/modules/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidSessionID accepts the ids minted by session.New: "session_" plus a uuid.
func isValidSessionID(v string) bool {
	const prefix = "session_"
	if len(v) <= len(prefix) || len(v) > 64 || v[:len(prefix)] != prefix {
		return false
	}
	for _, c := range v[len(prefix):] {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrEmptyMessage):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
