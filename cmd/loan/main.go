package main

import (
	stdLog "log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/elibrary/loan-service/loan/app"
	"github.com/elibrary/loan-service/loan/config"
)

// @title        Loan Service API
// @version      1.0
// @description  Book checkout, renewal and return ledger.
// @BasePath     /api/v1
func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Fatal("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("run ", err)
	}
}
