package main

import (
	"io"
	stlog "log"
	"os"

	"github.com/fennwick/scribe/internal/app"
	"github.com/fennwick/scribe/internal/config"
	"github.com/fennwick/scribe/internal/logger"
)

func main() {
	var flags config.Flags
	args := flags.ParseFlags()

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, &flags)
	if err != nil {
		// A broken config file is not fatal; defaults carry on.
		stlog.Printf("Warning: config error: %v", err)
		cfg = config.Get()
	}

	var logOutput io.Writer = io.Discard
	switch cfg.Logger.LogFilePath {
	case "":
	case "-":
		logOutput = os.Stderr
	default:
		logFile, err := os.OpenFile(cfg.Logger.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			stlog.Fatalf("Failed to open log file '%s': %v", cfg.Logger.LogFilePath, err)
		}
		defer logFile.Close()
		logOutput = logFile
	}
	logger.Init(cfg.Logger.Level(), logOutput)

	logger.Infof("Starting %s", config.AppName)
	if filePath != "" {
		logger.Debugf("Opening file: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty")
	}

	readonly := flags.ReadOnly != nil && *flags.ReadOnly
	a, err := app.New(cfg, filePath, readonly)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		stlog.Fatalf("Error initializing application: %v", err)
	}

	if err := a.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		stlog.Fatalf("Application exited with error: %v", err)
	}

	logger.Infof("%s finished", config.AppName)
}
