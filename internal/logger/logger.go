package logger

import (
	"go.uber.org/zap"
)

// New builds a zap logger for the given mode ("production" or anything
// else, treated as development).
func New(mode string) (*zap.Logger, error) {
	if mode == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
