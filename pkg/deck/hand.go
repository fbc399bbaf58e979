package deck

import "strings"

// Hand represents a collection of cards
type Hand []*Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h *Hand) HasCard(card *Card) bool {
	for _, c := range *h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

func (h Hand) String() string {
	cards := make([]string, len(h))
	for i, card := range h {
		cards[i] = card.String()
	}

	return strings.Join(cards, ",")
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
