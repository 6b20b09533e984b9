package utils

import "go.uber.org/zap"

// NewLogger returns the process logger: zap's development config (console output, debug
// level, caller and stack traces on warn) when debug is set, production JSON at info otherwise.
func NewLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
