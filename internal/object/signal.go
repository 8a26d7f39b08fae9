package object

// SignalKind identifies what happened during an update.
type SignalKind int

const (
	// SignalPlayerRestored: the destroy animation finished and lives remain.
	SignalPlayerRestored SignalKind = iota
	// SignalPlayerDied: the destroy animation finished with no lives left.
	SignalPlayerDied
	// SignalPlayerFired: the player launched its projectile.
	SignalPlayerFired
	// SignalEnemyFired: a random enemy launched a projectile.
	SignalEnemyFired
	// SignalFormationStepped: the formation moved one step.
	SignalFormationStepped
	// SignalFormationLanded: a step-down brought the formation too close to the floor.
	SignalFormationLanded
	// SignalFormationCleared: the last enemy finished its destroy animation.
	SignalFormationCleared
	// SignalProjectileExpired: a projectile left the field.
	SignalProjectileExpired
)

var signalNames = [...]string{
	SignalPlayerRestored:    "player_restored",
	SignalPlayerDied:        "player_died",
	SignalPlayerFired:       "player_fired",
	SignalEnemyFired:        "enemy_fired",
	SignalFormationStepped:  "formation_stepped",
	SignalFormationLanded:   "formation_landed",
	SignalFormationCleared:  "formation_cleared",
	SignalProjectileExpired: "projectile_expired",
}

func (k SignalKind) String() string {
	if int(k) < len(signalNames) {
		return signalNames[k]
	}
	return "unknown"
}

// Signal is a notification raised by an object during update.
type Signal struct {
	Kind SignalKind
	Side Side // For projectile signals
}

// Signals is a queue the orchestrator drains once per tick.
// Objects never call back into the orchestrator directly.
type Signals struct {
	queue []Signal
}

// Push appends a signal. A nil queue drops it.
func (q *Signals) Push(s Signal) {
	if q == nil {
		return
	}
	q.queue = append(q.queue, s)
}

// Drain returns every queued signal in order and empties the queue.
func (q *Signals) Drain() []Signal {
	if q == nil || len(q.queue) == 0 {
		return nil
	}
	out := q.queue
	q.queue = nil
	return out
}

// Len returns the number of queued signals.
func (q *Signals) Len() int {
	if q == nil {
		return 0
	}
	return len(q.queue)
}
