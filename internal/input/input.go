// Package input turns raw key data from the front-ends into key-down/key-up
// events. Key names follow the DOM KeyboardEvent.code values, so the browser
// client and the game share one vocabulary.
package input

// Key identifies a physical key.
type Key int

const (
	KeyNone Key = iota
	KeyA
	KeyD
	KeyW
	KeyQ
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeySpace
	KeyEnter
	KeyEscape
)

var keyCodes = map[Key]string{
	KeyA:          "KeyA",
	KeyD:          "KeyD",
	KeyW:          "KeyW",
	KeyQ:          "KeyQ",
	KeyArrowLeft:  "ArrowLeft",
	KeyArrowRight: "ArrowRight",
	KeyArrowUp:    "ArrowUp",
	KeyArrowDown:  "ArrowDown",
	KeySpace:      "Space",
	KeyEnter:      "Enter",
	KeyEscape:     "Escape",
}

var codeKeys = func() map[string]Key {
	m := make(map[string]Key, len(keyCodes))
	for k, code := range keyCodes {
		m[code] = k
	}
	return m
}()

// String returns the DOM code of the key, or "" for KeyNone and unknown keys.
func (k Key) String() string {
	return keyCodes[k]
}

// KeyFromCode maps a DOM code to a Key. Unknown codes map to KeyNone.
func KeyFromCode(code string) Key {
	return codeKeys[code]
}

// Event is a single key transition.
type Event struct {
	Key  Key
	Down bool // true on key-down, false on key-up
}

// Down builds a key-down event.
func Down(k Key) Event {
	return Event{Key: k, Down: true}
}

// Up builds a key-up event.
func Up(k Key) Event {
	return Event{Key: k, Down: false}
}

// IsQuit reports whether the event asks a terminal front-end to exit.
func (e Event) IsQuit() bool {
	return e.Down && (e.Key == KeyQ || e.Key == KeyEscape)
}
