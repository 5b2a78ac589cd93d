// Package main is the entry point for the textscene editor.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/textscene/internal/app"
	"github.com/Faultbox/textscene/internal/config"
	"github.com/Faultbox/textscene/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== textscene ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	editor, err := app.NewEditor(cfg)
	if err != nil {
		logger.Error("failed to create editor", zap.Error(err))
		os.Exit(1)
	}
	defer editor.Close()

	editor.Run()

	logger.Info("editor closed normally")
}
