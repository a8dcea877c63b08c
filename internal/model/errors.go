package model

import "errors"

// Common errors used across the application
var (
	// Lookup errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrAreaNotFound   = errors.New("area not found")
	ErrGameNotFound   = errors.New("game not found")

	// Game rule errors
	ErrPlayerNotInGame     = errors.New("player is not in this game")
	ErrPlayerAlreadyInGame = errors.New("player is already in this game")
	ErrGameFull            = errors.New("game is full")
	ErrGameNotInProgress   = errors.New("no game in progress")
	ErrGameInProgress      = errors.New("game is already in progress")
	ErrGameIDMismatch      = errors.New("game id does not match the game in progress")
	ErrInvalidCommand      = errors.New("invalid command")
	ErrInvalidMove         = errors.New("invalid move")
	ErrNotYourTurn         = errors.New("not this player's turn")
	ErrInsufficientPlayers = errors.New("not enough players to start")

	// ErrDeckExhausted indicates both piles are empty. It signals a card
	// accounting bug, not a normal game condition.
	ErrDeckExhausted = errors.New("deck exhausted")

	// Bot errors
	ErrNotBot = errors.New("player is not a bot")
)
