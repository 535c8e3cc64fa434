// README: Destination recommendation handlers (single shot and SSE stream).
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripkit/internal/modules/recommend"
)

type RecommendHandler struct {
	svc *recommend.Service
}

func NewRecommendHandler(svc *recommend.Service) *RecommendHandler {
	return &RecommendHandler{svc: svc}
}

// Recommend handles POST /api/recommendations/destinations.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req recommend.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	resp, err := h.svc.Recommend(c.Request.Context(), req)
	if err != nil {
		writeError(c, http.StatusBadGateway, recommend.MsgGenericError)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}

// Stream handles POST /api/recommendations/destinations/stream.
func (h *RecommendHandler) Stream(c *gin.Context) {
	var req recommend.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	frames := make(chan recommend.Frame)
	go func() {
		defer close(frames)
		_ = h.svc.Stream(ctx, req, func(f recommend.Frame) error {
			select {
			case frames <- f:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	c.Stream(func(w io.Writer) bool {
		f, ok := <-frames
		if !ok {
			return false
		}
		writeFrame(w, f)
		return true
	})
}

func writeFrame(w io.Writer, f recommend.Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}
