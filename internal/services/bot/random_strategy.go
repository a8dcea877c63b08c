package bot

import (
	"github.com/unotown/unotown/internal/dependencies/random"
	"github.com/unotown/unotown/internal/model"
)

// RandomStrategy plays a random legal card and declares the color it holds
// the most of
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseCard picks a random card among those legal against the current
// color and value
func (s *RandomStrategy) ChooseCard(game *model.Game, hand []model.Card) (model.Card, bool) {
	var legal []model.Card
	for _, card := range hand {
		if card.Matches(game.CurrentColor, game.CurrentValue) {
			legal = append(legal, card)
		}
	}
	if len(legal) == 0 {
		return model.Card{}, false
	}
	return legal[s.random.Intn(len(legal))], true
}

// ChooseColor returns the color appearing most often in the hand, or a
// random color when the hand holds no colored cards
func (s *RandomStrategy) ChooseColor(hand []model.Card) model.Color {
	counts := make(map[model.Color]int)
	for _, card := range hand {
		if card.Color.IsPlayable() {
			counts[card.Color]++
		}
	}

	colors := model.PlayableColors()
	best := colors[s.random.Intn(len(colors))]
	bestCount := 0
	for _, color := range colors {
		if counts[color] > bestCount {
			best = color
			bestCount = counts[color]
		}
	}
	return best
}
