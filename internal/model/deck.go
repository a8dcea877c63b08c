package model

// Deck holds the two card piles for a game. The top of the discard pile is
// the face-up card. Cards are never created or destroyed after the deck is
// built: the multiset union of the draw pile, the discard pile and every
// hand stays constant for the life of a game.
type Deck struct {
	// DrawPile is ordered bottom-to-top; draws pop from the end
	DrawPile []Card
	// DiscardPile accumulates played cards; the last element is face up
	DiscardPile []Card
}

// FaceUp returns the current face-up card, or nil before the first play
func (d *Deck) FaceUp() *Card {
	if len(d.DiscardPile) == 0 {
		return nil
	}
	return &d.DiscardPile[len(d.DiscardPile)-1]
}

// Remaining returns the number of cards left in the draw pile
func (d *Deck) Remaining() int {
	return len(d.DrawPile)
}

// Size returns the total number of cards across both piles
func (d *Deck) Size() int {
	return len(d.DrawPile) + len(d.DiscardPile)
}
