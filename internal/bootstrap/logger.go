package bootstrap

import (
	"go-leave/internal/shared/config"

	"go.uber.org/zap"
)

// NewLogger returns a production JSON logger in production and a
// development console logger otherwise, and installs it as the zap global.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
