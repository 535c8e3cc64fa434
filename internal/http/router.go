// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripkit/internal/http/handlers"
	"tripkit/internal/http/middleware"
	"tripkit/internal/modules/download"
	"tripkit/internal/modules/imagegen"
	"tripkit/internal/modules/recommend"
	"tripkit/internal/modules/session"
)

type RouterDeps struct {
	Sessions  *session.Service
	Images    *imagegen.Service
	Recommend *recommend.Service
	Download  *download.Service
	Logger    *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Logging(logger), middleware.Recovery(logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")

	chatHandler := handlers.NewChatHandler(deps.Sessions)
	api.POST("/sessions", chatHandler.Start)
	api.GET("/sessions/:id", chatHandler.Resume)
	api.PUT("/sessions/:id/preferences", chatHandler.SetPreferences)
	api.POST("/chat", chatHandler.Chat)

	generateHandler := handlers.NewGenerateHandler(deps.Images, deps.Sessions)
	api.POST("/sessions/:id/generate", generateHandler.GenerateForSession)
	api.POST("/generate", generateHandler.Generate)

	recommendHandler := handlers.NewRecommendHandler(deps.Recommend)
	api.POST("/recommendations/destinations", recommendHandler.Recommend)
	api.POST("/recommendations/destinations/stream", recommendHandler.Stream)

	downloadHandler := handlers.NewDownloadHandler(deps.Download)
	api.POST("/download-image", downloadHandler.Download)

	return r
}
