package config

import (
	"go.uber.org/zap"
)

// NewLogger returns a JSON production logger, or a console logger in development.
func NewLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
