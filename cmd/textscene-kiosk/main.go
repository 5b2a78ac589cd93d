// Package main runs the scene full window without the debug panel.
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

	logger.Info("=== textscene kiosk ===")

	k, err := app.NewKiosk(cfg)
	if err != nil {
		logger.Error("failed to create kiosk", zap.Error(err))
		os.Exit(1)
	}
	defer k.Close()

	if err := k.Run(); err != nil {
		logger.Error("kiosk error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("kiosk closed normally")
}
