package handrank

import (
	"sort"

	"pokerverse-server/pkg/deck"
)

// Evaluate returns the best five-card score the supplied cards can make.
// It accepts between 5 and 7 cards and checks every five-card subset
// (at most C(7,5)=21), so no lookup tables are needed.
// Fewer than 5 cards yields the zero Score, which loses to any real hand.
func Evaluate(cards []*deck.Card) Score {
	if len(cards) < 5 {
		return Score{}
	}

	var best Score
	first := true

	eachFiveCardSubset(cards, func(subset []*deck.Card) {
		score := scoreFiveCards(subset)
		if first || score.Beats(best) {
			best = score
			first = false
		}
	})

	return best
}

// eachFiveCardSubset calls fn with every five-card subset of cards.
// The slice passed to fn is reused between calls.
func eachFiveCardSubset(cards []*deck.Card, fn func([]*deck.Card)) {
	n := len(cards)
	subset := make([]*deck.Card, 5)

	var recurse func(start, depth int)
	recurse = func(start, depth int) {
		if depth == 5 {
			fn(subset)
			return
		}

		for i := start; i <= n-(5-depth); i++ {
			subset[depth] = cards[i]
			recurse(i+1, depth+1)
		}
	}

	recurse(0, 0)
}

// scoreFiveCards scores exactly five cards
func scoreFiveCards(cards []*deck.Card) Score {
	ranks := make([]int, 5)
	suits := make(map[deck.Suit]bool)
	counts := make(map[int]int)

	for i, card := range cards {
		ranks[i] = card.Rank
		suits[card.Suit] = true
		counts[card.Rank]++
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	isFlush := len(suits) == 1
	isStraight := len(counts) == 5 && ranks[0]-ranks[4] == 4

	// the wheel: A-5-4-3-2, with the ace ranked low so it loses to a 6-high straight
	if len(counts) == 5 && ranks[0] == deck.Ace && ranks[1] == 5 && ranks[4] == 2 {
		isStraight = true
		ranks = []int{5, 4, 3, 2, 1}
	}

	if isStraight && isFlush {
		if ranks[0] == deck.Ace {
			return Score{Category: RoyalFlush, Kickers: ranks}
		}
		return Score{Category: StraightFlush, Kickers: ranks}
	}

	quads, trips, pairs := groupRanks(counts)

	if len(quads) == 1 {
		return Score{Category: FourOfAKind, Kickers: append(quads, remainingRanks(ranks, quads)...)}
	}

	if len(trips) == 1 && len(pairs) == 1 {
		return Score{Category: FullHouse, Kickers: append(trips, pairs...)}
	}

	if isFlush {
		return Score{Category: Flush, Kickers: ranks}
	}

	if isStraight {
		return Score{Category: Straight, Kickers: ranks}
	}

	if len(trips) == 1 {
		return Score{Category: ThreeOfAKind, Kickers: append(trips, remainingRanks(ranks, trips)...)}
	}

	if len(pairs) == 2 {
		return Score{Category: TwoPair, Kickers: append(pairs, remainingRanks(ranks, pairs)...)}
	}

	if len(pairs) == 1 {
		return Score{Category: OnePair, Kickers: append(pairs, remainingRanks(ranks, pairs)...)}
	}

	return Score{Category: HighCard, Kickers: ranks}
}

// groupRanks splits the rank histogram into quads, trips, and pairs,
// each sorted highest first
func groupRanks(counts map[int]int) (quads, trips, pairs []int) {
	for rank, count := range counts {
		switch count {
		case 4:
			quads = append(quads, rank)
		case 3:
			trips = append(trips, rank)
		case 2:
			pairs = append(pairs, rank)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(pairs)))
	return
}

// remainingRanks returns the ranks, in descending order, that are not
// consumed by a higher grouping. A grouped rank never reappears as a kicker.
func remainingRanks(ranks, consumed []int) []int {
	isConsumed := make(map[int]bool, len(consumed))
	for _, rank := range consumed {
		isConsumed[rank] = true
	}

	kickers := make([]int, 0, len(ranks))
	for _, rank := range ranks {
		if !isConsumed[rank] {
			kickers = append(kickers, rank)
		}
	}

	return kickers
}
