package redis

import (
	"fmt"

	"github.com/unotown/unotown/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "unotown"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// areaKey returns the Redis key for a GameArea
func areaKey(id model.AreaID) string {
	return fmt.Sprintf("%s:area:%s", keyPrefix, id)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameInstanceID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}
