package game

// EventType identifies a game notification.
type EventType int

const (
	EventStateChanged EventType = iota
	EventScoreChanged
	EventLivesChanged
	EventLevelStarted
	EventPlayerFired
	EventEnemyFired
	EventEnemyHit
	EventPlayerHit
	EventFormationStepped
)

var eventNames = [...]string{
	EventStateChanged:     "state_changed",
	EventScoreChanged:     "score_changed",
	EventLivesChanged:     "lives_changed",
	EventLevelStarted:     "level_started",
	EventPlayerFired:      "player_fired",
	EventEnemyFired:       "enemy_fired",
	EventEnemyHit:         "enemy_hit",
	EventPlayerHit:        "player_hit",
	EventFormationStepped: "formation_stepped",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is delivered to listeners synchronously from within Tick, HandleKey
// or Reset. It carries a snapshot of the counters at that moment.
type Event struct {
	Type  EventType
	From  State // For EventStateChanged
	To    State
	Score int
	Lives int
	Level int
}

// Listener receives game events.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}
