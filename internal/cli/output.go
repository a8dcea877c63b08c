package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Area:
		o.printArea(v)
	case GameInstance:
		o.printGameInstance(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsGuest  bool   `json:"is_guest"`
	IsBot    bool   `json:"is_bot,omitempty"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Card response type
type Card struct {
	Color  string `json:"color"`
	Value  string `json:"value"`
	Sprite string `json:"sprite"`
}

// Move response type
type Move struct {
	PlayerID string `json:"player_id"`
	Card     Card   `json:"card"`
}

// PlayerHand response type
type PlayerHand struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	Ready    bool   `json:"ready"`
	Cards    []Card `json:"cards"`
}

// GameState response type
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

// GameResult response type
type GameResult struct {
	GameID string         `json:"game_id"`
	Scores map[string]int `json:"scores"`
}

// GameInstance response type
type GameInstance struct {
	ID      string      `json:"id"`
	State   GameState   `json:"state"`
	Players []string    `json:"players"`
	Result  *GameResult `json:"result,omitempty"`
}

// Area response type
type Area struct {
	ID          string       `json:"id"`
	CurrentGame *string      `json:"current_game"`
	History     []GameResult `json:"history"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	kind := "registered"
	if p.IsGuest {
		kind = "guest"
	}
	if p.IsBot {
		kind = "bot"
	}
	fmt.Printf("Player: %s (%s)\n", p.Username, p.ID)
	fmt.Printf("Type: %s\n", kind)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printArea(a Area) {
	fmt.Printf("Area: %s\n", a.ID)
	if a.CurrentGame != nil {
		fmt.Printf("Current Game: %s\n", *a.CurrentGame)
	} else {
		fmt.Println("Current Game: none")
	}
	if len(a.History) > 0 {
		fmt.Printf("History (%d):\n", len(a.History))
		for _, r := range a.History {
			fmt.Printf("  %s:\n", r.GameID)
			for username, score := range r.Scores {
				fmt.Printf("    %s: %d\n", username, score)
			}
		}
	}
}

func (o *Output) printGameInstance(g GameInstance) {
	s := g.State
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", s.Status)

	if s.Status == "in_progress" {
		fmt.Printf("Current: %s %s\n", s.CurrentColor, s.CurrentValue)
		fmt.Printf("Direction: %s\n", s.Direction)
		if s.CurrentMovePlayer != nil {
			fmt.Printf("Turn: %s\n", *s.CurrentMovePlayer)
		}
		if s.PendingColorChoice != nil {
			fmt.Printf("Waiting for color choice from: %s\n", *s.PendingColorChoice)
		}
	}

	if s.MostRecentMove != nil {
		fmt.Printf("Last Move: %s played %s\n", s.MostRecentMove.PlayerID, cardLabel(s.MostRecentMove.Card))
	}
	fmt.Printf("Moves: %d\n", s.MovesSoFar)

	fmt.Printf("Players (%d):\n", len(s.Hands))
	for _, h := range s.Hands {
		readyStr := ""
		if s.Status == "waiting_to_start" && h.Ready {
			readyStr = " [ready]"
		}
		fmt.Printf("  - %s (%s): %d cards%s\n", h.Username, h.PlayerID, len(h.Cards), readyStr)
		if len(h.Cards) > 0 {
			labels := make([]string, len(h.Cards))
			for i, c := range h.Cards {
				labels[i] = cardLabel(c)
			}
			fmt.Printf("      %s\n", strings.Join(labels, ", "))
		}
	}

	if s.Winner != nil {
		fmt.Printf("\nWinner: %s\n", *s.Winner)
	}
	if g.Result != nil {
		fmt.Println("Final Scores:")
		for username, score := range g.Result.Scores {
			fmt.Printf("  %s: %d\n", username, score)
		}
	}
}

func cardLabel(c Card) string {
	if c.Color == "wild" {
		return c.Value
	}
	return c.Color + " " + c.Value
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
