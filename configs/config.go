package configs

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/resilientlabs/credit-scoring-api/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Host string `mapstructure:"HOST" validate:"required"`
	Port string `mapstructure:"PORT" validate:"required"`

	ArtifactDir  string `mapstructure:"ARTIFACT_DIR" validate:"required"`
	ModelFile    string `mapstructure:"MODEL_FILE" validate:"required"`
	ScalerFile   string `mapstructure:"SCALER_FILE" validate:"required"`
	ManifestFile string `mapstructure:"MANIFEST_FILE" validate:"required"`

	ArtifactBaseURL         string `mapstructure:"ARTIFACT_BASE_URL" validate:"omitempty,url"`
	ArtifactFetchTimeoutSec int    `mapstructure:"ARTIFACT_FETCH_TIMEOUT_SECONDS" validate:"min=1"`

	StaticDir       string `mapstructure:"STATIC_DIR"`
	OnnxLibraryPath string `mapstructure:"ONNX_LIBRARY_PATH"`
}

func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix("app") // Prefix for env vars
	viper.AutomaticEnv()

	// Default values
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("ARTIFACT_DIR", ".")
	viper.SetDefault("MODEL_FILE", "credit_scoring_model.json")
	viper.SetDefault("SCALER_FILE", "scaler.json")
	viper.SetDefault("MANIFEST_FILE", "model_manifest.yaml")
	viper.SetDefault("ARTIFACT_FETCH_TIMEOUT_SECONDS", "30")
	viper.SetDefault("STATIC_DIR", "./static")

	// Optional: Read from config.yaml if exists
	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running in test mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running in development mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	_ = viper.ReadInConfig() // Ignore if no file

	var cfg Config
	if err := utils.ParseStructEnv(&cfg); err != nil {
		return nil, err
	}
	// Validate after unmarshal
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, utils.FormatConfigErrors(logger, err, cfg)
	}
	return &cfg, nil
}
