package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/resilientlabs/credit-scoring-api/configs"
	_ "github.com/resilientlabs/credit-scoring-api/docs"
	"github.com/resilientlabs/credit-scoring-api/internal/handlers"
	"github.com/resilientlabs/credit-scoring-api/internal/observability"
	"github.com/resilientlabs/credit-scoring-api/internal/services"
	"github.com/resilientlabs/credit-scoring-api/pkg"
	middleware "github.com/resilientlabs/credit-scoring-api/pkg/middlewares"
	"github.com/resilientlabs/credit-scoring-api/pkg/model"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// NewRouter builds the Gin engine with middleware and all routes. Kept
// separate from NewApp so tests can drive the full HTTP surface against
// their own store and config.
func NewRouter(logger *zap.Logger, cfg *configs.Config, store *model.Store) *gin.Engine {
	predictionService := services.NewPredictionService(logger, store)
	predictHandler := handlers.NewPredictHandler(logger, predictionService)
	baseHandler := handlers.NewBaseHandler(logger, predictionService, cfg.StaticDir)

	r := gin.Default()

	// Browser clients submit from arbitrary origins; no credentials involved.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AddAllowHeaders(pkg.HeaderTraceId)
	r.Use(cors.New(corsCfg))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/")
	api.Use(middleware.TraceID())
	api.Use(middleware.Metrics())

	predictHandler.RegisterRoutes(api)
	baseHandler.RegisterRoutes(r)

	return r
}

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server and a cleanup func.
// It reads configuration from environment variables via configs.Load.
func NewApp(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	// Load config
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	// Load the artifact pair. Failure is tolerated: the service starts,
	// reports model_loaded=false, and scoring returns 503 until restart.
	store := model.NewStore()
	if err := model.Bootstrap(ctx, logger, store, model.LoadOptions{
		Dir:             cfg.ArtifactDir,
		ModelFile:       cfg.ModelFile,
		ScalerFile:      cfg.ScalerFile,
		ManifestFile:    cfg.ManifestFile,
		BaseURL:         cfg.ArtifactBaseURL,
		FetchTimeout:    time.Duration(cfg.ArtifactFetchTimeoutSec) * time.Second,
		OnnxLibraryPath: cfg.OnnxLibraryPath,
	}); err != nil {
		logger.Error("model artifacts not loaded, scoring unavailable until restart", zap.Error(err))
	}
	if store.Ready() {
		observability.ModelLoaded.Set(1)
	}

	r := NewRouter(logger, cfg, store)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	cleanup := func() {
		// release the classifier session
		if err := store.Close(); err != nil {
			logger.Warn("artifact store close", zap.Error(err))
		}
	}

	return srv, cleanup, nil
}
