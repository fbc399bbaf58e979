package handrank

import "fmt"

// Category is a class of poker hand, i.e., royal flush
type Category int

// Constants for category, in ascending order of strength
const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	case RoyalFlush:
		return "Royal flush"
	default:
		panic(fmt.Sprintf("unknown category: %d", c))
	}
}
