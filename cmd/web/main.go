package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	host := flag.String("host", config.GetEnv("WEB_HOST", defaultHost), "listen host")
	port := flag.String("port", config.GetEnv("WEB_PORT", defaultPort), "listen port")
	logFile := flag.String("log", config.GetEnv("INVADERS_LOG", ""), "also write logs to this file (rotated)")
	logLevel := flag.String("log-level", config.GetEnv("INVADERS_LOG_LEVEL", "info"), "log level")
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

	sessions := loop.NewServer()
	handler := web.NewHandler(lib, web.WithLogger(logger), web.WithServer(sessions))

	addr := net.JoinHostPort(*host, *port)
	srv := &http.Server{Addr: addr, Handler: web.NewMux(handler)}

	go func() {
		logger.Info("starting web server", zap.String("url", "http://"+addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down", zap.Int("sessions", sessions.ActiveCount()))

	sessions.Shutdown(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
