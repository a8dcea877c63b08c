package storage

import (
	"context"

	"github.com/unotown/unotown/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Area operations
	SaveArea(ctx context.Context, area *model.GameArea) error
	GetArea(ctx context.Context, id model.AreaID) (*model.GameArea, error)
	DeleteArea(ctx context.Context, id model.AreaID) error
	AreaExists(ctx context.Context, id model.AreaID) (bool, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameInstanceID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameInstanceID) error
}
