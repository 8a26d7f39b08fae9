package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
)

func main() {
	sound := flag.Bool("sound", config.GetEnvBool("INVADERS_SOUND", false), "play sound effects")
	logFile := flag.String("log", config.GetEnv("INVADERS_LOG", ""), "write logs to this file (rotated)")
	logLevel := flag.String("log-level", config.GetEnv("INVADERS_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	flag.Parse()

	// Stdout belongs to the game, so logs only go to the file.
	logger, err := logging.FromEnv(*logFile, *logLevel, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync(logger)

	listeners := []game.Listener{logging.EventLogger(logger)}
	if *sound {
		sm := audio.NewSoundManager(0.8)
		if err := sm.Initialize(); err != nil {
			logger.Warn("sound disabled", zap.Error(err))
		} else {
			defer sm.Cleanup()
			listeners = append(listeners, sm)
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	opts := loop.Options{
		Logger:    logger,
		Listeners: listeners,
		Username:  os.Getenv("USER"),
	}
	if err := loop.Run(reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		logger.Error("game error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
