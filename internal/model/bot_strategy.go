package model

// Bot strategy constants
const (
	BotStrategyRandom = "random"
)

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyRandom}
}
