package memory

import (
	"context"
	"sync"

	"github.com/unotown/unotown/internal/model"
	"github.com/unotown/unotown/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	areas             map[model.AreaID]*model.GameArea
	games             map[model.GameInstanceID]*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		areas:             make(map[model.AreaID]*model.GameArea),
		games:             make(map[model.GameInstanceID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Area operations

func (s *Storage) SaveArea(ctx context.Context, area *model.GameArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas[area.ID] = area
	return nil
}

func (s *Storage) GetArea(ctx context.Context, id model.AreaID) (*model.GameArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	area, ok := s.areas[id]
	if !ok {
		return nil, model.ErrAreaNotFound
	}
	return area, nil
}

func (s *Storage) DeleteArea(ctx context.Context, id model.AreaID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.areas, id)
	return nil
}

func (s *Storage) AreaExists(ctx context.Context, id model.AreaID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.areas[id]
	return ok, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameInstanceID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameInstanceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}
