package holdem

import "pokerverse-server/pkg/deck"

// Player is a seat at the table.
// A player persists across hands; the chip balance carries over and the
// per-hand fields are cleared by resetForRound.
type Player struct {
	Username string

	chips int
	hole  deck.Hand
	bet   int

	folded bool
	allIn  bool
	acted  bool
}

func newPlayer(username string, chips int) *Player {
	return &Player{
		Username: username,
		chips:    chips,
	}
}

func (p *Player) resetForRound() {
	p.hole = nil
	p.bet = 0
	p.folded = false
	p.allIn = false
	p.acted = false
}

// canAct returns true if the player may still make betting decisions this hand
func (p *Player) canAct() bool {
	return !p.folded && !p.allIn
}

// Chips returns the player's chip balance
func (p *Player) Chips() int {
	return p.chips
}

// Bet returns the amount the player has committed this street
func (p *Player) Bet() int {
	return p.bet
}

// HoleCards returns the player's hole cards, if a hand is underway
func (p *Player) HoleCards() deck.Hand {
	return p.hole
}

// Folded returns true if the player folded this hand
func (p *Player) Folded() bool {
	return p.folded
}

// AllIn returns true if the player has committed their entire balance
func (p *Player) AllIn() bool {
	return p.allIn
}
