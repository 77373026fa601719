// Package config centralizes the tunable parameters of the terminal hosts.
package config

import "time"

// Field resolution - the logical coordinate space the engine uses.
// Actual rendering scales to fit terminal size.
const (
	FieldWidth  = 100 // Logical field width (percent)
	FieldHeight = 100 // Logical field height (percent, in sub-pixels)
)

// Max render resolution - larger terminals get a centered, bordered field.
const (
	MaxTermWidth  = 100
	MaxTermHeight = 50
)

// Rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxParticles    = 400
)

// Controls
const (
	KeyboardStep = 4.0 // Field percent per key press
)

// Shutdown
const (
	ShutdownDisplay = 10 * time.Second // Notice shown before auto-disconnect
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
