package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/unotown/unotown/internal/dependencies/clock"
	"github.com/unotown/unotown/internal/dependencies/random"
	"github.com/unotown/unotown/internal/model"
	"github.com/unotown/unotown/internal/services/area"
	"github.com/unotown/unotown/internal/services/game"
	"github.com/unotown/unotown/internal/storage"
)

const (
	// PlayerIDAlphabet is the character set for generating bot player IDs
	PlayerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// PlayerIDLength is the length of generated bot player IDs
	PlayerIDLength = 16
	// MaxBotIterations is a safety limit for the ProcessBotActions loop
	MaxBotIterations = 1000
)

// BotActionType represents the type of action a bot took
type BotActionType string

const (
	ActionPlayCard     BotActionType = "play_card"
	ActionDrawCard     BotActionType = "draw_card"
	ActionChooseColor  BotActionType = "choose_color"
	ActionGameComplete BotActionType = "game_complete"
)

// BotAction represents a single action taken by a bot during ProcessBotActions
type BotAction struct {
	Type     BotActionType
	PlayerID model.PlayerID
	Card     model.Card
	Color    model.Color
}

// Service manages bot players seated in game areas
type Service struct {
	storage        storage.Storage
	areaController *area.Controller
	gameController *game.Controller
	strategies     map[string]Strategy
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(
	store storage.Storage,
	areaController *area.Controller,
	gameController *game.Controller,
	strategies map[string]Strategy,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:        store,
		areaController: areaController,
		gameController: gameController,
		strategies:     strategies,
		clock:          clk,
		random:         rnd,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// CreateBotPlayer creates a new bot player and saves it to storage
func (s *Service) CreateBotPlayer(ctx context.Context, username string, strategy string) (*model.Player, error) {
	player := &model.Player{
		ID:          model.PlayerID("bot-" + s.random.String(PlayerIDLength, PlayerIDAlphabet)),
		Username:    username,
		IsGuest:     true,
		IsBot:       true,
		BotStrategy: strategy,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// AddBotToArea creates a bot player, seats it in the area's game and marks
// it ready. Bots can only be added while the game is waiting to start.
func (s *Service) AddBotToArea(ctx context.Context, areaID model.AreaID, strategy string) (*model.Player, error) {
	// Validate strategy
	if _, ok := s.strategies[strategy]; !ok {
		return nil, fmt.Errorf("unknown bot strategy: %s", strategy)
	}

	ar, err := s.areaController.EnsureArea(ctx, areaID)
	if err != nil {
		return nil, err
	}

	// Count existing bots for naming
	botCount := 0
	if ar.CurrentGame != nil {
		g, err := s.gameController.GetGame(ctx, *ar.CurrentGame)
		if err != nil {
			return nil, err
		}
		if g.Status == model.GameInProgress {
			return nil, model.ErrGameInProgress
		}
		for i := range g.Players {
			if g.Players[i].Player.IsBot {
				botCount++
			}
		}
	}

	username := fmt.Sprintf("Bot %d", botCount+1)
	bot, err := s.CreateBotPlayer(ctx, username, strategy)
	if err != nil {
		return nil, err
	}

	if _, err := s.areaController.HandleCommand(ctx, areaID, *bot, model.Command{Type: model.CommandJoinGame}); err != nil {
		return nil, err
	}
	if _, err := s.areaController.HandleCommand(ctx, areaID, *bot, model.Command{Type: model.CommandReadyUp}); err != nil {
		return nil, err
	}

	s.logger.Info("bot added to area",
		slog.String("area_id", string(areaID)),
		slog.String("bot_id", string(bot.ID)),
		slog.String("bot_name", username),
	)

	return bot, nil
}

// RemoveBotFromArea removes a bot player from the area's game
func (s *Service) RemoveBotFromArea(ctx context.Context, areaID model.AreaID, botPlayerID model.PlayerID) error {
	ar, err := s.areaController.GetArea(ctx, areaID)
	if err != nil {
		return err
	}
	if ar.CurrentGame == nil {
		return model.ErrGameNotInProgress
	}

	g, err := s.gameController.GetGame(ctx, *ar.CurrentGame)
	if err != nil {
		return err
	}

	seated := g.GetPlayer(botPlayerID)
	if seated == nil {
		return model.ErrPlayerNotInGame
	}
	if !seated.Player.IsBot {
		return model.ErrNotBot
	}

	_, err = s.areaController.HandleCommand(ctx, areaID, seated.Player, model.Command{
		Type:   model.CommandLeaveGame,
		GameID: g.ID,
	})
	return err
}

// ProcessBotActions executes pending bot turns in a cascading loop until a
// human must act or the game ends. It returns all actions taken so handlers
// can report them.
func (s *Service) ProcessBotActions(ctx context.Context, areaID model.AreaID) ([]BotAction, error) {
	var actions []BotAction

	ar, err := s.areaController.GetArea(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if ar.CurrentGame == nil {
		return actions, nil
	}
	gameID := *ar.CurrentGame

	for i := 0; i < MaxBotIterations; i++ {
		g, err := s.gameController.GetGame(ctx, gameID)
		if err != nil {
			return actions, err
		}

		if g.Status != model.GameInProgress {
			if g.Status == model.GameOver && len(actions) > 0 {
				actions = append(actions, BotAction{Type: ActionGameComplete})
			}
			break
		}

		// A pending color choice preempts the turn order
		if g.PendingColorChoice != nil {
			chooser := g.GetPlayer(*g.PendingColorChoice)
			if chooser == nil || !chooser.Player.IsBot {
				break
			}

			strategy := s.strategyForPlayer(&chooser.Player)
			color := strategy.ChooseColor(chooser.Hand)
			if _, err := s.areaController.HandleCommand(ctx, areaID, chooser.Player, model.Command{
				Type:  model.CommandChangeColor,
				Color: color,
			}); err != nil {
				return actions, err
			}

			actions = append(actions, BotAction{
				Type:     ActionChooseColor,
				PlayerID: chooser.Player.ID,
				Color:    color,
			})
			continue
		}

		mover := g.CurrentPlayer()
		if mover == nil || !mover.Player.IsBot {
			break
		}

		strategy := s.strategyForPlayer(&mover.Player)
		card, ok := strategy.ChooseCard(g, mover.Hand)
		if !ok {
			if _, err := s.areaController.HandleCommand(ctx, areaID, mover.Player, model.Command{
				Type: model.CommandDrawFromDeck,
			}); err != nil {
				return actions, err
			}
			actions = append(actions, BotAction{
				Type:     ActionDrawCard,
				PlayerID: mover.Player.ID,
			})
			continue
		}

		if _, err := s.areaController.HandleCommand(ctx, areaID, mover.Player, model.Command{
			Type:   model.CommandGameMove,
			GameID: g.ID,
			Move:   &model.Move{PlayerID: mover.Player.ID, CardPlaced: card},
		}); err != nil {
			return actions, err
		}
		actions = append(actions, BotAction{
			Type:     ActionPlayCard,
			PlayerID: mover.Player.ID,
			Card:     card,
		})
	}

	return actions, nil
}

// strategyForPlayer returns the strategy for a bot player, falling back to
// the first registered strategy if the player's strategy is not found
func (s *Service) strategyForPlayer(player *model.Player) Strategy {
	if st, ok := s.strategies[player.BotStrategy]; ok {
		return st
	}
	// Fallback: use first available strategy
	for _, st := range s.strategies {
		return st
	}
	return nil
}
