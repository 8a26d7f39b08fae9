package game

// State is the global game state.
type State int

const (
	// StateOK: the level is being played.
	StateOK State = iota
	// StatePlayerHit: the player's destroy animation is playing.
	StatePlayerHit
	// StateGameOver: terminal until a restart input.
	StateGameOver
	// StatePlayerWin: every enemy is destroyed; the next level starts when
	// the transition timer elapses.
	StatePlayerWin
)

var stateNames = [...]string{
	StateOK:        "OK",
	StatePlayerHit: "PLAYER_HIT",
	StateGameOver:  "GAME_OVER",
	StatePlayerWin: "PLAYER_WIN",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}
