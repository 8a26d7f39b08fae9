package input

import (
	"bufio"
	"time"
)

// KeyHoldDuration is how long a key is considered held after its last byte.
// Terminals only report presses (plus auto-repeat), so key-up is synthesised
// once a key has been silent this long.
const KeyHoldDuration = 150 * time.Millisecond

// ctrlC arrives as a plain byte in raw mode.
const ctrlC = 0x03

// Stream delivers input bytes via a channel and tracks held keys.
type Stream struct {
	ch     chan byte
	closed bool
	held   map[Key]time.Time // Key -> last time a byte for it arrived
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:   make(chan byte, 128),
		held: make(map[Key]time.Time),
	}
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes (non-blocking) and returns the key
// transitions they imply at time now: a key-down the first time a key is
// seen, a key-up once it has been silent for KeyHoldDuration.
func (s *Stream) Poll(now time.Time) []Event {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.apply(buf, now)
}

// apply parses buf and updates the held set.
func (s *Stream) apply(buf []byte, now time.Time) []Event {
	var events []Event

	press := func(k Key) {
		if k == KeyNone {
			return
		}
		if _, held := s.held[k]; !held {
			events = append(events, Down(k))
		}
		s.held[k] = now
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if k := arrowKey(buf[i+2]); k != KeyNone {
				press(k)
				i += 2
				continue
			}
		}

		press(byteKey(b))
	}

	for k, last := range s.held {
		if now.Sub(last) >= KeyHoldDuration {
			delete(s.held, k)
			events = append(events, Up(k))
		}
	}

	return events
}

// Reset forgets every held key without emitting key-up events.
func (s *Stream) Reset() {
	clear(s.held)
}

func arrowKey(code byte) Key {
	switch code {
	case 'A':
		return KeyArrowUp
	case 'B':
		return KeyArrowDown
	case 'C':
		return KeyArrowRight
	case 'D':
		return KeyArrowLeft
	}
	return KeyNone
}

// byteKey maps a single byte to a key.
func byteKey(b byte) Key {
	switch b {
	case 'q', 'Q', ctrlC:
		return KeyQ
	case 'a', 'A':
		return KeyA
	case 'd', 'D':
		return KeyD
	case 'w', 'W':
		return KeyW
	case ' ':
		return KeySpace
	case '\n', '\r':
		return KeyEnter
	case '\x1b':
		return KeyEscape
	}
	return KeyNone
}
