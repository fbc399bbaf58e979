package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeck(t *testing.T) {
	d := New()

	assert.Equal(t, 52, d.CardsLeft())
	assert.Equal(t, Card{Rank: 2, Suit: Clubs}, *d.Cards[0])
	assert.Equal(t, Card{Rank: 14, Suit: Spades}, *d.Cards[51])

	unshuffled := d.HashCode()

	d.SetSeed(1)
	d.Reset()
	assert.NotEqual(t, unshuffled, d.HashCode())

	shuffled := d.HashCode()
	d.Reset()
	assert.NotEqual(t, shuffled, d.HashCode())
}

func TestDeck_Shuffle(t *testing.T) {
	d := New()
	unshuffled := d.HashCode()

	d.Shuffle(1)
	assert.NotEqual(t, unshuffled, d.HashCode())
	assert.Equal(t, int64(1), d.GetSeed())
	assert.Equal(t, 52, d.CardsLeft())

	assert.PanicsWithValue(t, "seed cannot be < 0", func() {
		d.Shuffle(-1)
	})
}

func TestDeck_Deal(t *testing.T) {
	a := assert.New(t)
	d := New()

	a.True(d.CanDeal(52))
	a.False(d.CanDeal(53))

	dealt, err := d.Deal(2)
	a.NoError(err)
	a.Equal(2, len(dealt))
	a.Equal(50, d.CardsLeft())

	// dealt from the tail
	a.Equal(Card{Rank: 14, Suit: Spades}, *dealt[0])
	a.Equal(Card{Rank: 13, Suit: Spades}, *dealt[1])

	// dealt cards are disjoint from the remainder
	for _, card := range dealt {
		for _, left := range d.Cards {
			a.False(card.Equal(left))
		}
	}

	rest, err := d.Deal(50)
	a.NoError(err)
	a.Equal(50, len(rest))
	a.Equal(0, d.CardsLeft())

	dealt, err = d.Deal(1)
	a.Nil(dealt)
	a.Equal(ErrInsufficientCards, err)
}

func TestDeck_DealDistinct(t *testing.T) {
	d := New()
	d.Shuffle(42)

	seen := make(map[Card]bool)
	cards, err := d.Deal(52)
	assert.NoError(t, err)

	for _, card := range cards {
		assert.False(t, seen[*card])
		seen[*card] = true
	}

	assert.Equal(t, 52, len(seen))
}

func TestDeck_Reset(t *testing.T) {
	d := New()
	d.Shuffle(1)

	_, err := d.Deal(10)
	assert.NoError(t, err)
	assert.Equal(t, 42, d.CardsLeft())

	d.Reset()
	assert.Equal(t, 52, d.CardsLeft())
}
