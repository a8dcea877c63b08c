package model

// Color identifies a card color. Wild cards carry ColorWild; ColorNone is
// only used in game state to mean "no color constraint yet".
type Color string

const (
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
	ColorWild   Color = "wild"
	ColorNone   Color = "none"
)

// PlayableColors returns the four colors a player may choose after a wild
func PlayableColors() []Color {
	return []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow}
}

// IsPlayable reports whether the color is one of the four real card colors
func (c Color) IsPlayable() bool {
	switch c {
	case ColorRed, ColorGreen, ColorBlue, ColorYellow:
		return true
	}
	return false
}

// CardValue identifies a card face value
type CardValue string

const (
	ValueZero  CardValue = "0"
	ValueOne   CardValue = "1"
	ValueTwo   CardValue = "2"
	ValueThree CardValue = "3"
	ValueFour  CardValue = "4"
	ValueFive  CardValue = "5"
	ValueSix   CardValue = "6"
	ValueSeven CardValue = "7"
	ValueEight CardValue = "8"
	ValueNine  CardValue = "9"

	ValueSkip         CardValue = "skip"
	ValueReverse      CardValue = "reverse"
	ValueDrawTwo      CardValue = "draw_two"
	ValueWild         CardValue = "wild"
	ValueWildDrawFour CardValue = "wild_draw_four"

	ValueNone CardValue = "none"
)

// NumericValues returns the ten number values in order
func NumericValues() []CardValue {
	return []CardValue{
		ValueZero, ValueOne, ValueTwo, ValueThree, ValueFour,
		ValueFive, ValueSix, ValueSeven, ValueEight, ValueNine,
	}
}

// IsNumeric reports whether the value is 0-9
func (v CardValue) IsNumeric() bool {
	for _, n := range NumericValues() {
		if v == n {
			return true
		}
	}
	return false
}

// Card is an immutable Uno card. Sprite is an opaque display-asset name
// for the rendering layer; the engine never interprets it.
type Card struct {
	Color  Color
	Value  CardValue
	Sprite string
}

// NewCard creates a card with its sprite name derived from color and value
func NewCard(color Color, value CardValue) Card {
	return Card{
		Color:  color,
		Value:  value,
		Sprite: spriteName(color, value),
	}
}

// IsWild reports whether the card is a Wild or Wild Draw Four
func (c Card) IsWild() bool {
	return c.Value == ValueWild || c.Value == ValueWildDrawFour
}

// Matches reports whether the card is a legal play against the current
// color and value. Wild cards always match; a ColorNone current color
// (first move of the game) matches everything.
func (c Card) Matches(currentColor Color, currentValue CardValue) bool {
	if c.IsWild() {
		return true
	}
	if currentColor == ColorNone {
		return true
	}
	return c.Color == currentColor || c.Value == currentValue
}

// Same reports whether two cards have the same face (color and value)
func (c Card) Same(other Card) bool {
	return c.Color == other.Color && c.Value == other.Value
}

func spriteName(color Color, value CardValue) string {
	if color == ColorWild {
		return string(value)
	}
	return string(color) + "_" + string(value)
}
