package web

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomz197/invaders/internal/input"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1 << 12
	sendQueueSize  = 8
)

// ClientConn wraps a websocket with a bounded send queue drained by writePump.
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte
}

// NewClientConn wraps ws.
func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, sendQueueSize),
	}
}

// Enqueue queues a message without blocking. When the queue is full the
// message is dropped; the next frame supersedes it anyway.
func (c *ClientConn) Enqueue(b []byte) bool {
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

// EnqueueJSON marshals v and queues it.
func (c *ClientConn) EnqueueJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.Enqueue(b)
	return nil
}

// EnqueueFinal discards whatever is still queued and queues b, waiting up
// to writeWait for room. It is meant for the last message before Close.
func (c *ClientConn) EnqueueFinal(b []byte) bool {
drain:
	for {
		select {
		case <-c.send:
		default:
			break drain
		}
	}

	t := time.NewTimer(writeWait)
	defer t.Stop()
	select {
	case c.send <- b:
		return true
	case <-t.C:
		return false
	}
}

// Close ends writePump once the queue is drained. Call once, from the
// goroutine that enqueues.
func (c *ClientConn) Close() {
	close(c.send)
}

// writePump writes queued messages and keeps the connection alive with pings.
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes key messages into keys until the connection fails or
// stop is closed, then calls done.
func (c *ClientConn) readPump(keys chan<- input.Event, stop <-chan struct{}, done func()) {
	defer done()
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { c.ws.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(pongWait))

		var km KeyMessage
		if err := json.Unmarshal(payload, &km); err != nil || km.Type != TypeKey {
			continue
		}
		key := input.KeyFromCode(km.Code)
		if key == input.KeyNone {
			continue
		}
		if !deliverKey(keys, input.Event{Key: key, Down: km.Down}, stop) {
			return
		}
	}
}

// deliverKey hands ev to the game loop. A press is dropped when the loop is
// behind; a release waits for room so no key stays held. It reports false
// once stop is closed.
func deliverKey(keys chan<- input.Event, ev input.Event, stop <-chan struct{}) bool {
	if ev.Down {
		select {
		case keys <- ev:
		case <-stop:
			return false
		default:
		}
		return true
	}
	select {
	case keys <- ev:
		return true
	case <-stop:
		return false
	}
}
