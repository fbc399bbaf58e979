package handrank

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"pokerverse-server/pkg/deck"
)

func TestEvaluate_Categories(t *testing.T) {
	testCases := []struct {
		name     string
		cards    string
		category Category
		kickers  []int
	}{
		{"royal flush", "10s,11s,12s,13s,14s", RoyalFlush, []int{14, 13, 12, 11, 10}},
		{"straight flush", "5h,6h,7h,8h,9h", StraightFlush, []int{9, 8, 7, 6, 5}},
		{"steel wheel", "14c,2c,3c,4c,5c", StraightFlush, []int{5, 4, 3, 2, 1}},
		{"four of a kind", "9c,9d,9h,9s,4c", FourOfAKind, []int{9, 4}},
		{"full house", "6c,6d,6h,10c,10d", FullHouse, []int{6, 10}},
		{"flush", "2d,5d,9d,11d,13d", Flush, []int{13, 11, 9, 5, 2}},
		{"straight", "4c,5d,6h,7s,8c", Straight, []int{8, 7, 6, 5, 4}},
		{"wheel", "14c,2d,3h,4s,5c", Straight, []int{5, 4, 3, 2, 1}},
		{"three of a kind", "12c,12d,12h,7s,2c", ThreeOfAKind, []int{12, 7, 2}},
		{"two pair", "11c,11d,4h,4s,14c", TwoPair, []int{11, 4, 14}},
		{"one pair", "8c,8d,14h,10s,3c", OnePair, []int{8, 14, 10, 3}},
		{"high card", "14c,12d,9h,6s,3c", HighCard, []int{14, 12, 9, 6, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := Evaluate(deck.CardsFromString(tc.cards))
			assert.Equal(t, tc.category, score.Category)
			assert.Equal(t, tc.kickers, score.Kickers)
		})
	}
}

func TestEvaluate_BestOfSeven(t *testing.T) {
	a := assert.New(t)

	// flush hides inside seven cards
	score := Evaluate(deck.CardsFromString("2d,5d,9d,11d,13d,14c,14s"))
	a.Equal(Flush, score.Category)
	a.Equal([]int{13, 11, 9, 5, 2}, score.Kickers)

	// pair of aces must not pick a lower pair
	score = Evaluate(deck.CardsFromString("14c,14d,2h,3s,7c,9d,12h"))
	a.Equal(OnePair, score.Category)
	a.Equal([]int{14, 12, 9, 7}, score.Kickers)

	// six cards make a straight over two pair
	score = Evaluate(deck.CardsFromString("5c,6d,7h,8s,9c,9d"))
	a.Equal(Straight, score.Category)
	a.Equal([]int{9, 8, 7, 6, 5}, score.Kickers)
}

func TestEvaluate_TooFewCards(t *testing.T) {
	sentinel := Evaluate(deck.CardsFromString("14s,14h,14d,14c"))
	assert.Equal(t, Score{}, sentinel)

	// the sentinel loses to the weakest real hand
	weakest := Evaluate(deck.CardsFromString("2c,3d,4h,5s,7c"))
	assert.True(t, weakest.Beats(sentinel))
}

func TestEvaluate_WheelRanksBelowSixHigh(t *testing.T) {
	wheel := Evaluate(deck.CardsFromString("14c,2d,3h,4s,5c"))
	sixHigh := Evaluate(deck.CardsFromString("2c,3d,4h,5s,6c"))
	assert.True(t, sixHigh.Beats(wheel))
}

func TestEvaluate_OrderInvariance(t *testing.T) {
	cards := deck.CardsFromString("8c,8d,14h,10s,3c,6d,12h")
	expected := Evaluate(cards)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 25; i++ {
		shuffled := make([]*deck.Card, len(cards))
		copy(shuffled, cards)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		assert.True(t, expected.Ties(Evaluate(shuffled)))
	}
}

func TestEvaluate_SuitInvarianceWithoutFlush(t *testing.T) {
	// exchanging suits must not matter when no flush is possible
	first := Evaluate(deck.CardsFromString("8c,8d,14h,10s,3c"))
	second := Evaluate(deck.CardsFromString("8h,8s,14c,10d,3h"))
	assert.True(t, first.Ties(second))
}

func TestScore_Compare(t *testing.T) {
	a := assert.New(t)

	pairOfNines := Score{Category: OnePair, Kickers: []int{9, 14, 10, 3}}
	pairOfEights := Score{Category: OnePair, Kickers: []int{8, 14, 10, 3}}
	flush := Score{Category: Flush, Kickers: []int{13, 11, 9, 5, 2}}

	a.True(pairOfNines.Beats(pairOfEights))
	a.True(flush.Beats(pairOfNines))
	a.False(pairOfEights.Beats(pairOfNines))
	a.True(pairOfNines.Ties(pairOfNines))

	// kicker comparison is lexicographic
	better := Score{Category: OnePair, Kickers: []int{9, 14, 10, 4}}
	a.True(better.Beats(pairOfNines))
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "High card", HighCard.String())
	assert.Equal(t, "Royal flush", RoyalFlush.String())
	assert.Panics(t, func() {
		_ = Category(99).String()
	})
}
