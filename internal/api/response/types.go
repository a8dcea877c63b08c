package response

import (
	"time"

	"github.com/unotown/unotown/internal/model"
	"github.com/unotown/unotown/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsGuest  bool   `json:"is_guest"`
	IsBot    bool   `json:"is_bot,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:       string(p.ID),
		Username: p.Username,
		IsGuest:  p.IsGuest,
		IsBot:    p.IsBot,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Card represents a card in API responses
type Card struct {
	Color  string `json:"color"`
	Value  string `json:"value"`
	Sprite string `json:"sprite"`
}

// CardFromModel converts model.Card
func CardFromModel(c model.Card) Card {
	return Card{
		Color:  string(c.Color),
		Value:  string(c.Value),
		Sprite: c.Sprite,
	}
}

// Move represents the most recent card play
type Move struct {
	PlayerID string `json:"player_id"`
	Card     Card   `json:"card"`
}

// MoveFromModel converts model.Move
func MoveFromModel(m model.Move) Move {
	return Move{
		PlayerID: string(m.PlayerID),
		Card:     CardFromModel(m.CardPlaced),
	}
}

// PlayerHand is one seat in a game state response
type PlayerHand struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	Ready    bool   `json:"ready"`
	Cards    []Card `json:"cards"`
}

// PlayerHandFromModel converts model.PlayerHand
func PlayerHandFromModel(h model.PlayerHand) PlayerHand {
	cards := make([]Card, len(h.Cards))
	for i, c := range h.Cards {
		cards[i] = CardFromModel(c)
	}
	return PlayerHand{
		PlayerID: string(h.PlayerID),
		Username: h.Username,
		Ready:    h.Ready,
		Cards:    cards,
	}
}

// GameState represents the current game state
type GameState struct {
	Status             string       `json:"status"`
	CurrentColor       string       `json:"current_color"`
	CurrentValue       string       `json:"current_value"`
	CurrentMovePlayer  *string      `json:"current_move_player"`
	Direction          string       `json:"direction"`
	MostRecentMove     *Move        `json:"most_recent_move"`
	MovesSoFar         int          `json:"moves_so_far"`
	Hands              []PlayerHand `json:"hands"`
	PendingColorChoice *string      `json:"pending_color_choice,omitempty"`
	Winner             *string      `json:"winner,omitempty"`
}

// GameStateFromModel converts model.GameState
func GameStateFromModel(s model.GameState) GameState {
	hands := make([]PlayerHand, len(s.Hands))
	for i, h := range s.Hands {
		hands[i] = PlayerHandFromModel(h)
	}

	var mostRecent *Move
	if s.MostRecentMove != nil {
		m := MoveFromModel(*s.MostRecentMove)
		mostRecent = &m
	}

	return GameState{
		Status:             string(s.Status),
		CurrentColor:       string(s.CurrentColor),
		CurrentValue:       string(s.CurrentValue),
		CurrentMovePlayer:  playerIDPtr(s.CurrentMovePlayer),
		Direction:          string(s.Direction),
		MostRecentMove:     mostRecent,
		MovesSoFar:         s.MovesSoFar,
		Hands:              hands,
		PendingColorChoice: playerIDPtr(s.PendingColorChoice),
		Winner:             playerIDPtr(s.Winner),
	}
}

// GameResult represents a finished match in the area history
type GameResult struct {
	GameID string         `json:"game_id"`
	Scores map[string]int `json:"scores"`
}

// GameResultFromModel converts model.GameResult
func GameResultFromModel(r model.GameResult) GameResult {
	scores := make(map[string]int, len(r.Scores))
	for username, score := range r.Scores {
		scores[username] = score
	}
	return GameResult{
		GameID: string(r.GameID),
		Scores: scores,
	}
}

// GameInstance is the response produced after every command
type GameInstance struct {
	ID      string      `json:"id"`
	State   GameState   `json:"state"`
	Players []string    `json:"players"`
	Result  *GameResult `json:"result,omitempty"`
}

// GameInstanceFromModel converts model.GameInstance
func GameInstanceFromModel(inst *model.GameInstance) GameInstance {
	players := make([]string, len(inst.Players))
	for i, p := range inst.Players {
		players[i] = string(p)
	}

	var result *GameResult
	if inst.Result != nil {
		r := GameResultFromModel(*inst.Result)
		result = &r
	}

	return GameInstance{
		ID:      string(inst.ID),
		State:   GameStateFromModel(inst.State),
		Players: players,
		Result:  result,
	}
}

// Area represents a game area in API responses
type Area struct {
	ID          string       `json:"id"`
	CurrentGame *string      `json:"current_game"`
	History     []GameResult `json:"history"`
	CreatedAt   time.Time    `json:"created_at"`
}

// AreaFromModel converts model.GameArea
func AreaFromModel(a *model.GameArea) Area {
	history := make([]GameResult, len(a.History))
	for i, r := range a.History {
		history[i] = GameResultFromModel(r)
	}

	var currentGame *string
	if a.CurrentGame != nil {
		g := string(*a.CurrentGame)
		currentGame = &g
	}

	return Area{
		ID:          string(a.ID),
		CurrentGame: currentGame,
		History:     history,
		CreatedAt:   a.CreatedAt,
	}
}

func playerIDPtr(id *model.PlayerID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}
