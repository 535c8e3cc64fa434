// README: Image download passthrough handler.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripkit/internal/modules/download"
)

type DownloadHandler struct {
	svc *download.Service
}

func NewDownloadHandler(svc *download.Service) *DownloadHandler {
	return &DownloadHandler{svc: svc}
}

type downloadReq struct {
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
}

// Download handles POST /api/download-image.
func (h *DownloadHandler) Download(c *gin.Context) {
	var req downloadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	img, err := h.svc.Fetch(c.Request.Context(), req.ImageURL, req.Filename)
	if err != nil {
		switch {
		case errors.Is(err, download.ErrMissingURL):
			writeError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, download.ErrUpstream):
			writeError(c, http.StatusBadGateway, err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "failed to download image: "+err.Error())
		}
		return
	}

	c.Header("Content-Disposition", img.ContentDisposition())
	c.Header("Content-Length", strconv.Itoa(len(img.Data)))
	c.Data(http.StatusOK, img.ContentType, img.Data)
}
