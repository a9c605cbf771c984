package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/resilientlabs/credit-scoring-api/internal/services"
	"github.com/resilientlabs/credit-scoring-api/internal/views"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger    *zap.Logger
	service   services.PredictionService
	staticDir string
}

func NewBaseHandler(logger *zap.Logger, svc services.PredictionService, staticDir string) *BaseHandler {
	return &BaseHandler{logger: logger, service: svc, staticDir: staticDir}
}

func (b *BaseHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", b.GetHealth)
	r.GET("/", b.GetRoot)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if b.staticDir != "" {
		r.Static("/static", b.staticDir)
	}
}

// GetHealth godoc
//
//	@Summary	Liveness probe with artifact status
//	@Produce	json
//	@Success	200	{object}	views.HealthResponse
//	@Router		/health [get]
func (b *BaseHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, views.HealthResponse{
		Status:      "ok",
		ModelLoaded: b.service.ModelLoaded(),
	})
}

// GetRoot serves the scoring form when one is deployed, otherwise a
// status body with the artifact state.
func (b *BaseHandler) GetRoot(c *gin.Context) {
	if b.staticDir != "" {
		index := filepath.Join(b.staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
	}
	c.JSON(http.StatusOK, views.RootStatusResponse{
		Status:      "running",
		ModelLoaded: b.service.ModelLoaded(),
	})
}
