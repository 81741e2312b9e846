package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/learning-galaxy/internal/config"
)

// New builds the application logger: JSON in production, console output otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zcfg.Level = level
	}

	return zcfg.Build(zap.Fields(zap.String("app", "learning-galaxy")))
}
