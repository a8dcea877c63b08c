package model

import "time"

// EventType identifies the type of a state-change event
type EventType string

const (
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
	EventPlayerReady  EventType = "player_ready"
	EventCardsDealt   EventType = "cards_dealt"
	EventMovePlayed   EventType = "move_played"
	EventCardDrawn    EventType = "card_drawn"
	EventColorChanged EventType = "color_changed"
	EventGameOver     EventType = "game_over"
)

// Event is the single notification emitted after every successful command.
// Instance carries the full post-command snapshot so listeners never need
// to read partially-applied state.
type Event struct {
	Type      EventType
	Timestamp time.Time
	AreaID    AreaID
	GameID    GameInstanceID
	PlayerID  PlayerID // the player whose command produced the event
	Instance  GameInstance
}
