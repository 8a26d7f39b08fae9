package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tomz197/invaders/internal/game"
)

func TestNewWithoutOutputsIsNop(t *testing.T) {
	l, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Core().Enabled(zap.ErrorLevel) {
		t.Error("logger without outputs should be a no-op")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewWritesConsoleAndFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "invaders.log")

	l, err := New(Options{File: file, Level: "debug", Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("hello", zap.Int("n", 1))
	Sync(l)

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("console output = %q", buf.String())
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "DEBUG") {
		t.Errorf("file output = %q", data)
	}
}

func TestEventLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	listener := EventLogger(zap.New(core))

	listener.OnEvent(game.Event{Type: game.EventStateChanged, From: game.StateOK, To: game.StateGameOver, Score: 40})
	listener.OnEvent(game.Event{Type: game.EventFormationStepped})
	listener.OnEvent(game.Event{Type: game.EventPlayerHit, Lives: 2})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("%d entries, want 2", len(entries))
	}
	fields := entries[0].ContextMap()
	if entries[0].Message != "state changed" || fields["to"] != "GAME_OVER" || fields["score"] != int64(40) {
		t.Errorf("entry = %s %v", entries[0].Message, fields)
	}
	if entries[1].Message != "player hit" {
		t.Errorf("entry = %s", entries[1].Message)
	}
}
