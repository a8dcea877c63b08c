package model

import "time"

// GameInstanceID uniquely identifies a single playthrough
type GameInstanceID string

// GameStatus represents the lifecycle phase of a game.
// Transitions are monotonic: waiting_to_start -> in_progress -> over.
type GameStatus string

const (
	GameWaitingToStart GameStatus = "waiting_to_start"
	GameInProgress     GameStatus = "in_progress"
	GameOver           GameStatus = "over"
)

// Direction is the traversal order of the turn ring
type Direction string

const (
	DirectionClockwise        Direction = "clockwise"
	DirectionCounterClockwise Direction = "counter_clockwise"
)

// Opposite returns the reversed direction
func (d Direction) Opposite() Direction {
	if d == DirectionClockwise {
		return DirectionCounterClockwise
	}
	return DirectionClockwise
}

// Step returns the seat-index delta for one hop. Counter-clockwise follows
// arrival order.
func (d Direction) Step() int {
	if d == DirectionClockwise {
		return -1
	}
	return 1
}

// Player limits while a game is in progress
const (
	MinPlayers = 2
	MaxPlayers = 6
)

// InitialHandSize is the number of cards dealt to each player
const InitialHandSize = 7

// GamePlayer is one seat in the turn ring: a participant identity plus
// their hand and ready flag. Seats are kept in arrival order.
type GamePlayer struct {
	Player   Player
	Hand     []Card
	Ready    bool
	JoinedAt time.Time
}

// Move is a single card play
type Move struct {
	PlayerID   PlayerID
	CardPlaced Card
}

// Game is the authoritative state of one Uno playthrough
type Game struct {
	ID     GameInstanceID
	AreaID AreaID
	Status GameStatus

	// Players in arrival order; the slice plus CurrentPlayerIdx and
	// Direction is the turn ring
	Players []GamePlayer

	Deck Deck

	CurrentColor Color
	CurrentValue CardValue
	// CurrentPlayerIdx indexes Players, -1 when no mover (before start,
	// after the game ends)
	CurrentPlayerIdx int
	Direction        Direction
	MostRecentMove   *Move
	MovesSoFar       int
	// PendingColorChoice is set when a wild is played and cleared by the
	// matching ChangeColor call
	PendingColorChoice *PlayerID
	Winner             PlayerID // set only when Status is over

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerIndex returns the seat index for a player, or -1 if absent
func (g *Game) PlayerIndex(id PlayerID) int {
	for i := range g.Players {
		if g.Players[i].Player.ID == id {
			return i
		}
	}
	return -1
}

// GetPlayer returns the seat for a player, or nil if absent
func (g *Game) GetPlayer(id PlayerID) *GamePlayer {
	if i := g.PlayerIndex(id); i >= 0 {
		return &g.Players[i]
	}
	return nil
}

// CurrentPlayer returns the seat whose turn it is, or nil
func (g *Game) CurrentPlayer() *GamePlayer {
	if g.CurrentPlayerIdx < 0 || g.CurrentPlayerIdx >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIdx]
}

// CurrentMovePlayerID returns the id of the current mover, or nil
func (g *Game) CurrentMovePlayerID() *PlayerID {
	p := g.CurrentPlayer()
	if p == nil {
		return nil
	}
	id := p.Player.ID
	return &id
}

// NextIndex returns the seat index one hop from `from` in the given
// direction
func (g *Game) NextIndex(from int, dir Direction) int {
	n := len(g.Players)
	if n == 0 {
		return -1
	}
	return ((from+dir.Step())%n + n) % n
}

// AllReady reports whether every seated player has readied up
func (g *Game) AllReady() bool {
	for i := range g.Players {
		if !g.Players[i].Ready {
			return false
		}
	}
	return true
}

// CardCount returns the total cards across both piles and every hand.
// It is constant for the life of a started game.
func (g *Game) CardCount() int {
	total := g.Deck.Size()
	for i := range g.Players {
		total += len(g.Players[i].Hand)
	}
	return total
}

// PlayerHand is one player's seat in a GameState snapshot
type PlayerHand struct {
	PlayerID PlayerID
	Username string
	Ready    bool
	Cards    []Card
}

// GameState is the wire snapshot of a game, read by external listeners.
// It round-trips through JSON without information loss.
type GameState struct {
	Status             GameStatus
	CurrentColor       Color
	CurrentValue       CardValue
	CurrentMovePlayer  *PlayerID
	Direction          Direction
	MostRecentMove     *Move
	MovesSoFar         int
	Hands              []PlayerHand // parallel to the seat order
	PendingColorChoice *PlayerID
	Winner             *PlayerID
}

// Snapshot builds the wire snapshot for the game's current state
func (g *Game) Snapshot() GameState {
	hands := make([]PlayerHand, len(g.Players))
	for i := range g.Players {
		cards := make([]Card, len(g.Players[i].Hand))
		copy(cards, g.Players[i].Hand)
		hands[i] = PlayerHand{
			PlayerID: g.Players[i].Player.ID,
			Username: g.Players[i].Player.Username,
			Ready:    g.Players[i].Ready,
			Cards:    cards,
		}
	}

	var mostRecent *Move
	if g.MostRecentMove != nil {
		m := *g.MostRecentMove
		mostRecent = &m
	}

	var pending *PlayerID
	if g.PendingColorChoice != nil {
		p := *g.PendingColorChoice
		pending = &p
	}

	var winner *PlayerID
	if g.Winner != "" {
		w := g.Winner
		winner = &w
	}

	return GameState{
		Status:             g.Status,
		CurrentColor:       g.CurrentColor,
		CurrentValue:       g.CurrentValue,
		CurrentMovePlayer:  g.CurrentMovePlayerID(),
		Direction:          g.Direction,
		MostRecentMove:     mostRecent,
		MovesSoFar:         g.MovesSoFar,
		Hands:              hands,
		PendingColorChoice: pending,
		Winner:             winner,
	}
}

// GameInstance is the response model produced after every command
type GameInstance struct {
	ID      GameInstanceID
	State   GameState
	Players []PlayerID
	Result  *GameResult
}

// ToInstance builds the response model, attaching the recorded result if
// the game has one in the area history
func (g *Game) ToInstance(result *GameResult) GameInstance {
	players := make([]PlayerID, len(g.Players))
	for i := range g.Players {
		players[i] = g.Players[i].Player.ID
	}
	return GameInstance{
		ID:      g.ID,
		State:   g.Snapshot(),
		Players: players,
		Result:  result,
	}
}
