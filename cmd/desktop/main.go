package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/ebitenui"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/logging"
	loopconfig "github.com/tomz197/invaders/internal/loop/config"
)

func main() {
	logFile := flag.String("log", config.GetEnv("INVADERS_LOG", ""), "write logs to this file (rotated)")
	logLevel := flag.String("log-level", config.GetEnv("INVADERS_LOG_LEVEL", "info"), "log level")
	scale := flag.Int("scale", config.GetEnvInt("INVADERS_SCALE", 1), "window scale factor")
	flag.Parse()

	logger, err := logging.FromEnv(*logFile, *logLevel, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync(logger)

	lib, err := asset.LoadDefault(context.Background())
	if err != nil {
		logger.Warn("loading sprite sheets", zap.Error(err))
	}

	g := game.New(lib, game.WithListener(logging.EventLogger(logger)))

	ebiten.SetWindowSize(loopconfig.FieldWidth*max(*scale, 1), loopconfig.FieldHeight*max(*scale, 1))
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetTPS(loopconfig.TargetFPS)
	if err := ebiten.RunGame(ebitenui.New(g)); err != nil {
		logger.Error("game error", zap.Error(err))
		os.Exit(1)
	}
}
