package deck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// face cards
const (
	Jack    = 11
	Queen   = 12
	King    = 13
	Ace     = 14
	HighAce = Ace
	LowAce  = 1
)

// Card is an individual playing card.
// Cards compare by rank only; suits are unranked.
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c *Card) String() string {
	var rank string
	switch c.Rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%s%s", rank, suit)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// AceLowRank return the rank where Ace is considered low instead of high
func (c *Card) AceLowRank() int {
	if c.Rank == Ace {
		return 1
	}

	return c.Rank
}

// MarshalJSON encodes the card along with its display string
func (c *Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Rank   int    `json:"rank"`
		Suit   Suit   `json:"suit"`
		String string `json:"string"`
	}{
		Rank:   c.Rank,
		Suit:   c.Suit,
		String: c.String(),
	})
}

var cardRx = regexp.MustCompile(`(?i)^([0-9]|1[0-4])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 2 and <= 14 and suit in [cdhs]
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return &Card{
		Rank: rank,
		Suit: suit,
	}
}

// CardsFromString returns a slice of cards from a comma-separated string
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	parts := strings.Split(s, ",")
	cards := make([]*Card, len(parts))
	for i, part := range parts {
		cards[i] = CardFromString(part)
	}

	return cards
}
