package deck

import (
	"log/slog"

	"github.com/unotown/unotown/internal/dependencies/random"
	"github.com/unotown/unotown/internal/model"
)

// Copies per color in the canonical 108-card deck: one zero, two of each
// 1-9, two of each of Skip/Reverse/DrawTwo, plus four of each wild.
const (
	zeroCopies    = 1
	numberCopies  = 2
	specialCopies = 2
	wildCopies    = 4
)

// DeckSize is the total card count of a freshly built deck
const DeckSize = 108

// Service owns deck construction, shuffling, drawing and dealing
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new deck Service
func New(rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: rnd,
		logger: logger.With(slog.String("component", "deck-service")),
	}
}

// NewDeck builds the canonical 108-card draw pile, unshuffled
func (s *Service) NewDeck() model.Deck {
	cards := make([]model.Card, 0, DeckSize)

	for _, color := range model.PlayableColors() {
		for _, value := range model.NumericValues() {
			copies := numberCopies
			if value == model.ValueZero {
				copies = zeroCopies
			}
			for i := 0; i < copies; i++ {
				cards = append(cards, model.NewCard(color, value))
			}
		}
		for _, value := range []model.CardValue{model.ValueSkip, model.ValueReverse, model.ValueDrawTwo} {
			for i := 0; i < specialCopies; i++ {
				cards = append(cards, model.NewCard(color, value))
			}
		}
	}

	for i := 0; i < wildCopies; i++ {
		cards = append(cards, model.NewCard(model.ColorWild, model.ValueWild))
		cards = append(cards, model.NewCard(model.ColorWild, model.ValueWildDrawFour))
	}

	return model.Deck{DrawPile: cards}
}

// Shuffle permutes the draw pile in place (Fisher-Yates)
func (s *Service) Shuffle(d *model.Deck) {
	pile := d.DrawPile
	s.random.Shuffle(len(pile), func(i, j int) {
		pile[i], pile[j] = pile[j], pile[i]
	})
}

// Draw pops the top card of the draw pile. If the draw pile is empty the
// discard pile, minus the face-up card, is reshuffled into a new draw
// pile first. ErrDeckExhausted when both piles are out of cards.
func (s *Service) Draw(d *model.Deck) (model.Card, error) {
	if len(d.DrawPile) == 0 {
		if err := s.recycle(d); err != nil {
			return model.Card{}, err
		}
	}

	top := d.DrawPile[len(d.DrawPile)-1]
	d.DrawPile = d.DrawPile[:len(d.DrawPile)-1]
	return top, nil
}

// recycle moves all discarded cards except the face-up one back into the
// draw pile and shuffles
func (s *Service) recycle(d *model.Deck) error {
	if len(d.DiscardPile) <= 1 {
		return model.ErrDeckExhausted
	}

	faceUp := d.DiscardPile[len(d.DiscardPile)-1]
	d.DrawPile = append(d.DrawPile, d.DiscardPile[:len(d.DiscardPile)-1]...)
	d.DiscardPile = []model.Card{faceUp}
	s.Shuffle(d)

	s.logger.Info("discard pile recycled into draw pile",
		slog.Int("cards", len(d.DrawPile)),
	)
	return nil
}

// DealInitial deals the starting hands round-robin: one card to each seat
// per pass, in seat order, until every seat holds handSize cards.
func (s *Service) DealInitial(d *model.Deck, players []model.GamePlayer, handSize int) error {
	for i := 0; i < handSize; i++ {
		for j := range players {
			card, err := s.Draw(d)
			if err != nil {
				return err
			}
			players[j].Hand = append(players[j].Hand, card)
		}
	}
	return nil
}
