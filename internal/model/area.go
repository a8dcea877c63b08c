package model

import "time"

// AreaID identifies a hosting area. Areas are created by the surrounding
// space; each hosts at most one non-terminal game instance at a time.
type AreaID string

// GameResult records the outcome of a finished game: 1 for the winner,
// 0 for every other participant, keyed by username.
type GameResult struct {
	GameID GameInstanceID
	Scores map[string]int
}

// GameArea is a hosting area: the optional live game plus match history
type GameArea struct {
	ID          AreaID
	CurrentGame *GameInstanceID // nil when no game has been created yet
	History     []GameResult    // append-only, one entry per finished game
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasResult reports whether a result for the game is already recorded
func (a *GameArea) HasResult(id GameInstanceID) bool {
	for i := range a.History {
		if a.History[i].GameID == id {
			return true
		}
	}
	return false
}

// ResultFor returns the recorded result for a game, or nil
func (a *GameArea) ResultFor(id GameInstanceID) *GameResult {
	for i := range a.History {
		if a.History[i].GameID == id {
			return &a.History[i]
		}
	}
	return nil
}
