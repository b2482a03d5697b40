package config

import (
	"go.uber.org/zap"
)

// NewLogger builds the application logger: JSON output in production, console
// output with caller info otherwise.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = level
	return zcfg.Build(zap.Fields(zap.String("env", cfg.Env)))
}
