package utils

import (
	"go.uber.org/zap"
)

// NewLogger membuat structured logger sesuai environment
func NewLogger(env string) (*zap.Logger, error) {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	return config.Build()
}
