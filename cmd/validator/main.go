package main

import (
	"log"
	"os"

	"github.com/limaJavier/batchvalidator/internal/config"
	"github.com/limaJavier/batchvalidator/internal/driver"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer logger.Sync()

	cfg, found, err := config.Load(config.FileName)
	if err != nil {
		logger.Fatal("cannot load configuration", zap.String("file", config.FileName), zap.Error(err))
	} else if found {
		logger.Info("configuration loaded", zap.String("file", config.FileName))
	}

	// Per-solution verdicts go to stdout; the exit status only reflects I/O failures
	if err := driver.New(cfg, os.Stdout, logger).Run(); err != nil {
		logger.Error("validation aborted", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Encoding = "console"
	loggerConfig.Sampling = nil
	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return loggerConfig.Build()
}
