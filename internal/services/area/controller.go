package area

import (
	"context"
	"log/slog"

	"github.com/unotown/unotown/internal/dependencies/clock"
	"github.com/unotown/unotown/internal/model"
	"github.com/unotown/unotown/internal/services/game"
	"github.com/unotown/unotown/internal/storage"
)

// Notifier receives the single state-changed notification emitted after
// every successful command
type Notifier interface {
	Notify(ctx context.Context, event model.Event)
}

// NopNotifier discards notifications
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, event model.Event) {}

// Controller is the command dispatcher. It owns the optional live game per
// hosting area, enforces game-ID correspondence, forwards commands to the
// turn engine, records match history on completion, and emits exactly one
// notification per successful command.
type Controller struct {
	storage        storage.Storage
	gameController *game.Controller
	notifier       Notifier
	clock          clock.Clock
	logger         *slog.Logger
}

// NewController creates a new area Controller
func NewController(
	storage storage.Storage,
	gameController *game.Controller,
	notifier Notifier,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Controller{
		storage:        storage,
		gameController: gameController,
		notifier:       notifier,
		clock:          clock,
		logger:         logger,
	}
}

// GetArea retrieves an area by ID
func (c *Controller) GetArea(ctx context.Context, id model.AreaID) (*model.GameArea, error) {
	return c.storage.GetArea(ctx, id)
}

// EnsureArea returns the area, creating an empty one on first use. Areas
// are named by the surrounding space, so any ID is valid.
func (c *Controller) EnsureArea(ctx context.Context, id model.AreaID) (*model.GameArea, error) {
	area, err := c.storage.GetArea(ctx, id)
	if err == nil {
		return area, nil
	}
	if err != model.ErrAreaNotFound {
		return nil, err
	}

	now := c.clock.Now()
	area = &model.GameArea{
		ID:        id,
		History:   []model.GameResult{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.storage.SaveArea(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

// GetInstance returns the snapshot of the area's current game
func (c *Controller) GetInstance(ctx context.Context, areaID model.AreaID) (*model.GameInstance, error) {
	area, err := c.storage.GetArea(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if area.CurrentGame == nil {
		return nil, model.ErrGameNotInProgress
	}

	g, err := c.gameController.GetGame(ctx, *area.CurrentGame)
	if err != nil {
		return nil, err
	}

	instance := g.ToInstance(area.ResultFor(g.ID))
	return &instance, nil
}

// HandleCommand validates and dispatches one command for the given player.
// On success it returns the post-command snapshot; on error the game state
// is unchanged, no history is recorded and no notification is emitted.
func (c *Controller) HandleCommand(ctx context.Context, areaID model.AreaID, player model.Player, cmd model.Command) (*model.GameInstance, error) {
	area, err := c.EnsureArea(ctx, areaID)
	if err != nil {
		return nil, err
	}

	var gameID model.GameInstanceID
	var eventType model.EventType

	switch cmd.Type {
	case model.CommandJoinGame:
		gameID, err = c.joinGame(ctx, area, player)
		eventType = model.EventPlayerJoined

	case model.CommandGameMove:
		if gameID, err = c.matchGameID(area, cmd.GameID); err == nil {
			if cmd.Move == nil {
				err = model.ErrInvalidCommand
			} else {
				err = c.gameController.ApplyMove(ctx, gameID, player.ID, *cmd.Move)
			}
		}
		eventType = model.EventMovePlayed

	case model.CommandLeaveGame:
		if gameID, err = c.matchGameID(area, cmd.GameID); err == nil {
			err = c.gameController.Leave(ctx, gameID, player.ID)
		}
		eventType = model.EventPlayerLeft

	case model.CommandReadyUp:
		if gameID, err = c.currentGameID(area); err == nil {
			err = c.gameController.ReadyUp(ctx, gameID, player.ID)
		}
		eventType = model.EventPlayerReady

	case model.CommandDrawFromDeck:
		if gameID, err = c.currentGameID(area); err == nil {
			err = c.gameController.DrawFromDeck(ctx, gameID, player.ID)
		}
		eventType = model.EventCardDrawn

	case model.CommandChangeColor:
		if gameID, err = c.currentGameID(area); err == nil {
			err = c.gameController.ChangeColor(ctx, gameID, player.ID, cmd.Color)
		}
		eventType = model.EventColorChanged

	case model.CommandDealCards:
		if gameID, err = c.currentGameID(area); err == nil {
			err = c.gameController.DealCards(ctx, gameID, player.ID)
		}
		eventType = model.EventCardsDealt

	default:
		return nil, model.ErrInvalidCommand
	}

	if err != nil {
		return nil, err
	}

	return c.stateUpdated(ctx, area, gameID, player.ID, eventType)
}

// joinGame joins the live game, constructing a fresh one when none exists
// or the previous one has finished
func (c *Controller) joinGame(ctx context.Context, area *model.GameArea, player model.Player) (model.GameInstanceID, error) {
	if area.CurrentGame != nil {
		g, err := c.gameController.GetGame(ctx, *area.CurrentGame)
		if err != nil {
			return "", err
		}
		if g.Status != model.GameOver {
			return g.ID, c.gameController.Join(ctx, g.ID, player)
		}
	}

	g, err := c.gameController.CreateGame(ctx, area.ID)
	if err != nil {
		return "", err
	}
	if err := c.gameController.Join(ctx, g.ID, player); err != nil {
		return "", err
	}

	id := g.ID
	area.CurrentGame = &id
	return id, nil
}

// currentGameID returns the live game's ID or ErrGameNotInProgress
func (c *Controller) currentGameID(area *model.GameArea) (model.GameInstanceID, error) {
	if area.CurrentGame == nil {
		return "", model.ErrGameNotInProgress
	}
	return *area.CurrentGame, nil
}

// matchGameID additionally checks the command's game ID against the live
// instance
func (c *Controller) matchGameID(area *model.GameArea, commandGameID model.GameInstanceID) (model.GameInstanceID, error) {
	id, err := c.currentGameID(area)
	if err != nil {
		return "", err
	}
	if commandGameID != id {
		return "", model.ErrGameIDMismatch
	}
	return id, nil
}

// stateUpdated records history when a game is first observed as over,
// persists the area, and emits the single state-changed notification
func (c *Controller) stateUpdated(ctx context.Context, area *model.GameArea, gameID model.GameInstanceID, playerID model.PlayerID, eventType model.EventType) (*model.GameInstance, error) {
	g, err := c.gameController.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if g.Status == model.GameOver {
		eventType = model.EventGameOver
		if !area.HasResult(g.ID) {
			area.History = append(area.History, buildResult(g))
			c.logger.Info("game result recorded",
				slog.String("area_id", string(area.ID)),
				slog.String("game_id", string(g.ID)),
				slog.String("winner", string(g.Winner)),
			)
		}
	}

	area.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveArea(ctx, area); err != nil {
		return nil, err
	}

	instance := g.ToInstance(area.ResultFor(g.ID))

	c.notifier.Notify(ctx, model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		AreaID:    area.ID,
		GameID:    g.ID,
		PlayerID:  playerID,
		Instance:  instance,
	})

	return &instance, nil
}

// buildResult scores a finished game: 1 for the winner, 0 for everyone else
func buildResult(g *model.Game) model.GameResult {
	scores := make(map[string]int, len(g.Players))
	for i := range g.Players {
		p := g.Players[i].Player
		if p.ID == g.Winner {
			scores[p.Username] = 1
		} else {
			scores[p.Username] = 0
		}
	}
	return model.GameResult{GameID: g.ID, Scores: scores}
}

// Interface for dependency injection
type ControllerInterface interface {
	GetArea(ctx context.Context, id model.AreaID) (*model.GameArea, error)
	EnsureArea(ctx context.Context, id model.AreaID) (*model.GameArea, error)
	GetInstance(ctx context.Context, areaID model.AreaID) (*model.GameInstance, error)
	HandleCommand(ctx context.Context, areaID model.AreaID, player model.Player, cmd model.Command) (*model.GameInstance, error)
}

var _ ControllerInterface = (*Controller)(nil)
