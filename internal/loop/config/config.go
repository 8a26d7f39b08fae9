// Package config centralizes all tunable game parameters.
// Distances are in scene units (pixels of a 640x480 field), times in seconds.
package config

import "time"

// Play field.
const (
	FieldWidth  = 640
	FieldHeight = 480
	FieldLeft   = 50.0  // Left bound for the player and the formation
	FieldRight  = 590.0 // Right bound for the player and the formation
	FloorY      = 425.0 // Floor line; projectiles leave the field below it
	FloorWidth  = 5.0   // Stroke width of the floor line
)

// Player
const (
	InitialLives = 3
	PlayerSpeed  = 150.0 // Units per second
	PlayerStartX = 50.0
	PlayerStartY = 368.0 // Top edge; the sprite sits just above the floor
)

// Projectiles
const (
	ProjectileSpeed = 180.0 // Units per second, both sides
	EnemyShotKinds  = 3     // proj_1 .. proj_3
)

// Formation layout and movement.
const (
	FormationColumns = 6
	FormationRows    = 5
	FormationCellW   = 48.0
	FormationCellH   = 36.0
	FormationStartX  = 50.0
	FormationStartY  = 64.0

	FormationStepX        = 16.0 // Horizontal shift per step
	FormationStepY        = 36.0 // Vertical drop on each edge bounce
	FormationStepInterval = 0.5  // Seconds between steps

	// A step-down that leaves the formation bottom closer than this to the
	// floor ends the game.
	FloorThreshold = 32.0
)

// Enemy shooting: after each shot the timer is re-rolled in [min, max).
const (
	EnemyShotInitialDelay = 1.0
	EnemyShotMinDelay     = 20.0 / 60.0
	EnemyShotMaxDelay     = 170.0 / 60.0
)

// Scoring and level flow.
const (
	ScorePerEnemy          = 10
	LevelTransitionSeconds = 3.0
)

// Frame pacing for the front-ends.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxFrameDelta   = 100 * time.Millisecond // Longer stalls are not simulated in one step
)

// Terminal rendering
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Remote sessions
const (
	ShutdownDisplaySeconds      = 10.0 // Seconds to show shutdown message before auto-disconnect
	InactivityWarnSeconds       = 90   // Idle seconds before the warning overlay
	InactivityDisconnectSeconds = 120  // Idle seconds before the session is closed
)
