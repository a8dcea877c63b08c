package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unotown/unotown/internal/model"
	"github.com/unotown/unotown/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entities are stored as JSON values under per-type keys.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Guest players expire, registered players are kept
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, playerKey(player.ID), data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Area operations

func (s *Storage) SaveArea(ctx context.Context, area *model.GameArea) error {
	data, err := json.Marshal(area)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, areaKey(area.ID), data, s.cfg.AreaTTL).Err()
}

func (s *Storage) GetArea(ctx context.Context, id model.AreaID) (*model.GameArea, error) {
	data, err := s.client.Get(ctx, areaKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAreaNotFound
		}
		return nil, err
	}

	var area model.GameArea
	if err := json.Unmarshal(data, &area); err != nil {
		return nil, err
	}
	return &area, nil
}

func (s *Storage) DeleteArea(ctx context.Context, id model.AreaID) error {
	return s.client.Del(ctx, areaKey(id)).Err()
}

func (s *Storage) AreaExists(ctx context.Context, id model.AreaID) (bool, error) {
	count, err := s.client.Exists(ctx, areaKey(id)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameInstanceID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameInstanceID) error {
	return s.client.Del(ctx, gameKey(id)).Err()
}
