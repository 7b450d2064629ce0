package config

import (
	"log"

	"go.uber.org/zap"
)

// Logger is the process-wide structured logger. It is a no-op logger until
// InitLogger runs so packages can log from tests without setup.
var Logger = zap.NewNop()

// InitLogger builds the production logger when env is "production" and a
// development logger otherwise.
func InitLogger(env string) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	Logger = l

	Logger.Info("Zap logger initialized", zap.String("env", env))
}
