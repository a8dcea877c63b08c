package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a participant identity. Identities are resolved by the
// transport layer before commands reach the game core.
type Player struct {
	ID          PlayerID
	Username    string
	IsGuest     bool // true for unregistered players
	IsBot       bool
	BotStrategy string // strategy name, only set for bots
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with authentication data.
// Stored separately so the password hash never travels with sessions.
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login name (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
