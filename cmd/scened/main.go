// Package main is the entry point for the scene engine daemon. It reads
// console commands from stdin and runs the frame loop headless or in a
// window.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-scene/internal/config"
	"github.com/Faultbox/midgard-scene/internal/engine"
	"github.com/Faultbox/midgard-scene/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	console := logger.NewConsole(cfg.Logging.ConsoleLines)
	logger.AttachConsole(console, cfg.Logging.Level)

	logger.Info("=== Midgard Scene ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	eng := engine.New(cfg.Scene, logger.Named("engine"))
	seedDemo(eng)

	stdinDone := make(chan struct{})
	go readCommands(os.Stdin, eng, stdinDone)

	loop := &frameLoop{
		eng:       eng,
		console:   newBacklog(console, cfg.Logging.ConsoleLines),
		maxFrames: config.Frames(),
		stdinDone: stdinDone,
	}
	if cfg.Window.Headless {
		err = loop.runHeadless()
	} else {
		err = loop.runWindowed(cfg)
	}
	if err != nil {
		logger.Error("frame loop failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("scene closed normally", zap.Uint64("frames", eng.Frame()))
}

// readCommands forwards every stdin line to the frame loop.
func readCommands(r io.Reader, eng *engine.Engine, done chan<- struct{}) {
	defer close(done)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		eng.Post(engine.CommandLine(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		logger.Warn("reading commands", zap.Error(err))
	}
}
