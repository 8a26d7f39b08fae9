package web

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/scene"
)

func loadLibrary(t *testing.T) *asset.Library {
	t.Helper()
	lib, err := asset.LoadDefault(context.Background())
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	return lib
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

type envelope struct {
	Type string `json:"type"`
}

func readMessage(t *testing.T, ws *websocket.Conn) (string, []byte) {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return env.Type, data
}

func TestSessionStreamsAssetsThenFrames(t *testing.T) {
	ts := httptest.NewServer(NewMux(NewHandler(loadLibrary(t), WithTick(5*time.Millisecond))))
	defer ts.Close()
	ws := dial(t, ts)

	typ, data := readMessage(t, ws)
	if typ != TypeAssets {
		t.Fatalf("first message type = %q", typ)
	}
	var assets AssetsMessage
	if err := json.Unmarshal(data, &assets); err != nil {
		t.Fatalf("decode assets: %v", err)
	}
	if len(assets.Sheets) != len(asset.DefaultSheets) || assets.Width != config.FieldWidth {
		t.Errorf("assets: %d sheets, width %v", len(assets.Sheets), assets.Width)
	}

	typ, data = readMessage(t, ws)
	if typ != TypeFrame {
		t.Fatalf("second message type = %q", typ)
	}
	var frame SceneMessage
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if frame.State != "OK" || frame.Lives != config.InitialLives || frame.Level != 1 {
		t.Errorf("frame counters = %+v", frame)
	}

	if err := ws.WriteJSON(KeyMessage{Type: TypeKey, Code: "Space", Down: true}); err != nil {
		t.Fatalf("send key: %v", err)
	}
	for i := 0; i < 200; i++ {
		_, data := readMessage(t, ws)
		var f SceneMessage
		if err := json.Unmarshal(data, &f); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		for _, sp := range f.Sprites {
			if sp.Anim == "player_proj" {
				return
			}
		}
	}
	t.Fatal("space key never produced a player projectile")
}

func TestSessionShutdownNotice(t *testing.T) {
	srv := loop.NewServer()
	ts := httptest.NewServer(NewMux(NewHandler(loadLibrary(t), WithServer(srv), WithTick(5*time.Millisecond))))
	defer ts.Close()
	ws := dial(t, ts)

	if typ, _ := readMessage(t, ws); typ != TypeAssets {
		t.Fatalf("first message type = %q", typ)
	}

	done := make(chan bool, 1)
	go func() { done <- srv.Shutdown(3 * time.Second) }()

	for {
		typ, _ := readMessage(t, ws)
		if typ == TypeShutdown {
			break
		}
	}
	select {
	case ok := <-done:
		if !ok {
			t.Error("Shutdown timed out")
		}
	case <-time.After(4 * time.Second):
		t.Fatal("Shutdown did not return")
	}
}

func TestMuxServesPageAndHealth(t *testing.T) {
	ts := httptest.NewServer(NewMux(NewHandler(loadLibrary(t))))
	defer ts.Close()

	for path, want := range map[string]string{"/healthz": "ok", "/": "<canvas"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), want) {
			t.Errorf("GET %s = %d %q", path, resp.StatusCode, body)
		}
	}
}

func TestNewSceneMessage(t *testing.T) {
	g := game.New(loadLibrary(t), game.WithRand(rand.New(rand.NewSource(1))))
	sc := scene.New(config.FieldWidth, config.FieldHeight)
	g.Draw(sc)

	msg := NewSceneMessage(g, sc)
	if msg.Type != TypeFrame || msg.Score != 0 || msg.Lives != 3 {
		t.Errorf("counters = %+v", msg)
	}
	if len(msg.Lines) != 1 || msg.Lines[0].Color != "#00ff00" {
		t.Errorf("floor line = %+v", msg.Lines)
	}
	if len(msg.Sprites) != len(sc.Sprites) {
		t.Errorf("%d sprites, want %d", len(msg.Sprites), len(sc.Sprites))
	}
	for _, sp := range msg.Sprites {
		if sp.Sheet == "" || sp.W == 0 {
			t.Errorf("sprite without reference: %+v", sp)
		}
	}
	if msg.Texts[0].Anchor != "left" || !strings.HasPrefix(msg.Texts[0].Value, "score:") {
		t.Errorf("first text = %+v", msg.Texts[0])
	}
}
