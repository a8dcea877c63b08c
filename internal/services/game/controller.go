package game

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/unotown/unotown/internal/dependencies/clock"
	"github.com/unotown/unotown/internal/model"
	"github.com/unotown/unotown/internal/services/deck"
	"github.com/unotown/unotown/internal/storage"
)

// Controller is the turn engine: it owns the game state machine and applies
// joins, leaves, moves, draws and color changes with all rule side effects.
// Every operation validates fully before mutating, so a rejected command
// leaves the stored game untouched.
type Controller struct {
	storage     storage.Storage
	deckService *deck.Service
	clock       clock.Clock
	logger      *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	deckService *deck.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:     storage,
		deckService: deckService,
		clock:       clock,
		logger:      logger,
	}
}

// CreateGame initializes a new waiting game for an area
func (c *Controller) CreateGame(ctx context.Context, areaID model.AreaID) (*model.Game, error) {
	now := c.clock.Now()

	game := &model.Game{
		ID:               model.GameInstanceID(uuid.NewString()),
		AreaID:           areaID,
		Status:           model.GameWaitingToStart,
		Players:          []model.GamePlayer{},
		CurrentColor:     model.ColorNone,
		CurrentValue:     model.ValueNone,
		CurrentPlayerIdx: -1,
		Direction:        model.DirectionCounterClockwise,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("area_id", string(areaID)),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameInstanceID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// Join adds a player to a waiting game
func (c *Controller) Join(ctx context.Context, gameID model.GameInstanceID, player model.Player) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Status == model.GameOver {
		return model.ErrGameNotInProgress
	}
	if game.Status == model.GameInProgress {
		return model.ErrGameInProgress
	}
	if game.PlayerIndex(player.ID) >= 0 {
		return model.ErrPlayerAlreadyInGame
	}
	if len(game.Players) >= model.MaxPlayers {
		return model.ErrGameFull
	}

	game.Players = append(game.Players, model.GamePlayer{
		Player:   player,
		Hand:     []model.Card{},
		JoinedAt: c.clock.Now(),
	})
	game.UpdatedAt = c.clock.Now()

	return c.storage.SaveGame(ctx, game)
}

// ReadyUp toggles a player's ready flag. When every seated player is ready
// and the player count is within bounds, the game starts.
func (c *Controller) ReadyUp(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Status == model.GameOver {
		return model.ErrGameNotInProgress
	}
	if game.Status == model.GameInProgress {
		return model.ErrGameInProgress
	}

	seat := game.GetPlayer(playerID)
	if seat == nil {
		return model.ErrPlayerNotInGame
	}

	seat.Ready = !seat.Ready

	if game.AllReady() && len(game.Players) >= model.MinPlayers && len(game.Players) <= model.MaxPlayers {
		if err := c.start(game); err != nil {
			return err
		}
	}

	game.UpdatedAt = c.clock.Now()
	return c.storage.SaveGame(ctx, game)
}

// DealCards is the manual start trigger: a seated player begins the game
// regardless of ready flags, as long as the player count is within bounds
func (c *Controller) DealCards(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Status == model.GameOver {
		return model.ErrGameNotInProgress
	}
	if game.Status == model.GameInProgress {
		return model.ErrGameInProgress
	}
	if game.PlayerIndex(playerID) == -1 {
		return model.ErrPlayerNotInGame
	}
	if len(game.Players) < model.MinPlayers {
		return model.ErrInsufficientPlayers
	}

	if err := c.start(game); err != nil {
		return err
	}

	game.UpdatedAt = c.clock.Now()
	return c.storage.SaveGame(ctx, game)
}

// start transitions a waiting game into progress: builds and shuffles the
// deck, deals hands, and hands the first turn to the first joiner
func (c *Controller) start(game *model.Game) error {
	d := c.deckService.NewDeck()
	c.deckService.Shuffle(&d)
	if err := c.deckService.DealInitial(&d, game.Players, model.InitialHandSize); err != nil {
		return err
	}

	game.Deck = d
	game.Status = model.GameInProgress
	game.CurrentPlayerIdx = 0
	game.Direction = model.DirectionCounterClockwise
	game.CurrentColor = model.ColorNone
	game.CurrentValue = model.ValueNone

	c.logger.Info("game started",
		slog.String("game_id", string(game.ID)),
		slog.Int("player_count", len(game.Players)),
		slog.Int("draw_pile", game.Deck.Remaining()),
	)
	return nil
}

// ApplyMove validates and applies a card play, including all value-specific
// side effects, then advances the turn
func (c *Controller) ApplyMove(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID, move model.Move) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Status != model.GameInProgress {
		return model.ErrGameNotInProgress
	}

	mover := game.CurrentPlayer()
	if mover == nil || mover.Player.ID != playerID {
		return model.ErrNotYourTurn
	}

	card := move.CardPlaced
	handIdx := -1
	for i := range mover.Hand {
		if mover.Hand[i].Same(card) {
			handIdx = i
			break
		}
	}
	if handIdx == -1 {
		return model.ErrInvalidMove
	}
	if !card.Matches(game.CurrentColor, game.CurrentValue) {
		return model.ErrInvalidMove
	}

	// All validation passed; mutate
	played := mover.Hand[handIdx]
	mover.Hand = append(mover.Hand[:handIdx], mover.Hand[handIdx+1:]...)
	game.Deck.DiscardPile = append(game.Deck.DiscardPile, played)

	game.CurrentValue = played.Value
	if played.IsWild() {
		// Color stays open until the mover's ChangeColor call
		game.CurrentColor = model.ColorNone
		pid := playerID
		game.PendingColorChoice = &pid
	} else {
		game.CurrentColor = played.Color
		game.PendingColorChoice = nil
	}

	recorded := model.Move{PlayerID: playerID, CardPlaced: played}
	game.MostRecentMove = &recorded
	game.MovesSoFar++

	// Win check precedes turn advancement
	if len(mover.Hand) == 0 {
		game.Status = model.GameOver
		game.Winner = playerID
		game.CurrentPlayerIdx = -1
		game.UpdatedAt = c.clock.Now()

		c.logger.Info("game won",
			slog.String("game_id", string(game.ID)),
			slog.String("winner", string(playerID)),
			slog.Int("moves", game.MovesSoFar),
		)
		return c.storage.SaveGame(ctx, game)
	}

	if err := c.applySideEffect(game, played); err != nil {
		return err
	}

	game.UpdatedAt = c.clock.Now()
	return c.storage.SaveGame(ctx, game)
}

// applySideEffect runs the value-specific effect and advances the mover
func (c *Controller) applySideEffect(game *model.Game, played model.Card) error {
	switch played.Value {
	case model.ValueSkip:
		c.advance(game, 2)
	case model.ValueReverse:
		// With two players this returns the turn to the same opponent
		game.Direction = game.Direction.Opposite()
		c.advance(game, 1)
	case model.ValueDrawTwo:
		if err := c.drawForNext(game, 2); err != nil {
			return err
		}
		c.advance(game, 2)
	case model.ValueWild:
		c.advance(game, 1)
	case model.ValueWildDrawFour:
		if err := c.drawForNext(game, 4); err != nil {
			return err
		}
		c.advance(game, 2)
	default:
		c.advance(game, 1)
	}
	return nil
}

// advance moves the current mover the given number of hops in the current
// direction
func (c *Controller) advance(game *model.Game, hops int) {
	for i := 0; i < hops; i++ {
		game.CurrentPlayerIdx = game.NextIndex(game.CurrentPlayerIdx, game.Direction)
	}
}

// drawForNext makes the immediate next player draw n cards
func (c *Controller) drawForNext(game *model.Game, n int) error {
	next := &game.Players[game.NextIndex(game.CurrentPlayerIdx, game.Direction)]
	for i := 0; i < n; i++ {
		card, err := c.deckService.Draw(&game.Deck)
		if err != nil {
			return err
		}
		next.Hand = append(next.Hand, card)
	}
	return nil
}

// DrawFromDeck has the current mover draw one card; drawing always
// consumes the turn
func (c *Controller) DrawFromDeck(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Status != model.GameInProgress {
		return model.ErrGameNotInProgress
	}
	if game.PlayerIndex(playerID) == -1 {
		return model.ErrPlayerNotInGame
	}

	mover := game.CurrentPlayer()
	if mover == nil || mover.Player.ID != playerID {
		return model.ErrNotYourTurn
	}

	card, err := c.deckService.Draw(&game.Deck)
	if err != nil {
		return err
	}
	mover.Hand = append(mover.Hand, card)

	c.advance(game, 1)
	game.UpdatedAt = c.clock.Now()
	return c.storage.SaveGame(ctx, game)
}

// ChangeColor resolves the pending color choice left by a wild card.
// Only the player who played the wild may choose, and only while a choice
// is pending.
func (c *Controller) ChangeColor(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID, color model.Color) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Status != model.GameInProgress {
		return model.ErrGameNotInProgress
	}
	if game.PlayerIndex(playerID) == -1 {
		return model.ErrPlayerNotInGame
	}
	if game.PendingColorChoice == nil {
		return model.ErrInvalidMove
	}
	if *game.PendingColorChoice != playerID {
		return model.ErrNotYourTurn
	}
	if !color.IsPlayable() {
		return model.ErrInvalidMove
	}

	game.CurrentColor = color
	game.PendingColorChoice = nil
	game.UpdatedAt = c.clock.Now()

	return c.storage.SaveGame(ctx, game)
}

// Leave removes a player from the game. Mid-game, the turn passes to the
// next player first if the leaver was the mover, and the game ends when
// fewer than two players remain. The leaver's cards return to the bottom
// of the draw pile so the card count stays constant.
func (c *Controller) Leave(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Status == model.GameOver {
		return model.ErrGameNotInProgress
	}

	idx := game.PlayerIndex(playerID)
	if idx == -1 {
		return model.ErrPlayerNotInGame
	}

	// Remember who moves next in case the leaver holds the turn
	var nextID model.PlayerID
	if game.Status == model.GameInProgress && len(game.Players) > 1 {
		if game.CurrentPlayerIdx == idx {
			nextID = game.Players[game.NextIndex(idx, game.Direction)].Player.ID
		} else if game.CurrentPlayerIdx >= 0 {
			nextID = game.Players[game.CurrentPlayerIdx].Player.ID
		}
	}

	leaving := game.Players[idx]
	game.Players = append(game.Players[:idx], game.Players[idx+1:]...)

	if game.Status == model.GameInProgress {
		// Return the leaver's cards to the bottom of the draw pile
		if len(leaving.Hand) > 0 {
			game.Deck.DrawPile = append(append([]model.Card{}, leaving.Hand...), game.Deck.DrawPile...)
		}

		if len(game.Players) < model.MinPlayers {
			game.Status = model.GameOver
			game.CurrentPlayerIdx = -1
			if len(game.Players) == 1 {
				game.Winner = game.Players[0].Player.ID
			}
			c.logger.Info("game ended by departure",
				slog.String("game_id", string(game.ID)),
				slog.String("winner", string(game.Winner)),
			)
		} else {
			game.CurrentPlayerIdx = game.PlayerIndex(nextID)
		}

		// A pending color choice leaves with its owner
		if game.PendingColorChoice != nil && *game.PendingColorChoice == playerID {
			game.PendingColorChoice = nil
		}
	}

	game.UpdatedAt = c.clock.Now()
	return c.storage.SaveGame(ctx, game)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, areaID model.AreaID) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameInstanceID) (*model.Game, error)
	Join(ctx context.Context, gameID model.GameInstanceID, player model.Player) error
	ReadyUp(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID) error
	DealCards(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID) error
	ApplyMove(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID, move model.Move) error
	DrawFromDeck(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID) error
	ChangeColor(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID, color model.Color) error
	Leave(ctx context.Context, gameID model.GameInstanceID, playerID model.PlayerID) error
}

var _ ControllerInterface = (*Controller)(nil)
