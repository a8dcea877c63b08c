package bot

import "github.com/unotown/unotown/internal/model"

// Strategy defines how a bot picks cards and colors
type Strategy interface {
	// ChooseCard selects a legal card from the hand, or reports that none
	// is playable
	ChooseCard(game *model.Game, hand []model.Card) (model.Card, bool)
	// ChooseColor selects the color to declare after playing a wild
	ChooseColor(hand []model.Card) model.Color
}
