package holdem

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"pokerverse-server/pkg/deck"
	"pokerverse-server/pkg/holdem/action"
	"pokerverse-server/pkg/holdem/handrank"
)

// ErrInsufficientPlayers is an error when a round starts with fewer than two seats
var ErrInsufficientPlayers = errors.New("at least two players are required")

// ErrNotYourTurn is an error when a player acts out of turn
var ErrNotYourTurn = errors.New("not your turn")

// ErrMustCallOrFold is an error when a player checks while facing a bet
var ErrMustCallOrFold = errors.New("cannot check, must call or fold")

// ErrIllegalRaise is an error when a raise does not exceed the current bet
var ErrIllegalRaise = errors.New("raise must be greater than the current bet")

// ErrNoActiveHand is an error when a betting action arrives between hands
var ErrNoActiveHand = errors.New("no hand is in progress")

// ErrHandInProgress is an error when a round starts while one is live
var ErrHandInProgress = errors.New("a hand is already in progress")

// Options configures the forced blinds
type Options struct {
	SmallBlind int
	BigBlind   int
}

// DefaultOptions returns the default blind structure
func DefaultOptions() Options {
	return Options{
		SmallBlind: 10,
		BigBlind:   20,
	}
}

// Game is a single-table game of no-limit Texas Hold'em.
// One Game exists per room for the room's lifetime. Game is not safe for
// concurrent use; the room's run loop serializes access.
type Game struct {
	roomID    string
	options   Options
	players   []*Player
	deck      *deck.Deck
	community deck.Hand

	pot         int
	currentBet  int
	turnIndex   int
	dealerIndex int
	street      Street
	active      bool
	winners     []string
}

// NewGame returns a game with no seats and no hand in progress
func NewGame(roomID string, opts Options) *Game {
	if opts.SmallBlind <= 0 || opts.BigBlind <= opts.SmallBlind {
		opts = DefaultOptions()
	}

	return &Game{
		roomID:  roomID,
		options: opts,
		deck:    deck.New(),
		street:  StreetWaiting,
		// the dealer button moves before the first hand, so seat 0 opens as the dealer
		dealerIndex: -1,
	}
}

// RoomID returns the room identifier the game belongs to
func (g *Game) RoomID() string {
	return g.roomID
}

// Active returns true while a hand is being played
func (g *Game) Active() bool {
	return g.active
}

// AddPlayer seats a new player with the given starting balance.
// Seating is a no-op if the username is already at the table. The caller
// decides the balance; the game never consults the account store.
func (g *Game) AddPlayer(username string, chips int) {
	for _, p := range g.players {
		if p.Username == username {
			return
		}
	}

	g.players = append(g.players, newPlayer(username, chips))
}

// Player returns the seat for the username, or nil
func (g *Game) Player(username string) *Player {
	for _, p := range g.players {
		if p.Username == username {
			return p
		}
	}

	return nil
}

// StartRound begins a new hand: shuffles, moves the button, deals hole
// cards, and posts the blinds.
func (g *Game) StartRound() error {
	if g.active {
		// the committed pot would be destroyed, not refunded
		return ErrHandInProgress
	}

	if len(g.players) < 2 {
		return ErrInsufficientPlayers
	}

	g.active = true
	g.deck.Reset()
	g.community = make(deck.Hand, 0, 5)
	g.pot = 0
	g.currentBet = 0
	g.winners = nil
	g.street = StreetPreFlop
	g.dealerIndex = (g.dealerIndex + 1) % len(g.players)

	for _, p := range g.players {
		p.resetForRound()

		cards, err := g.deck.Deal(2)
		if err != nil {
			return g.abortHand(err)
		}
		p.hole = cards
	}

	sbIndex, bbIndex := g.blindSeats()

	// blinds are forced, not voluntary, so they never mark the seat as acted
	g.postBet(g.players[sbIndex], g.options.SmallBlind)
	g.postBet(g.players[bbIndex], g.options.BigBlind)
	g.currentBet = g.options.BigBlind

	g.turnIndex = (bbIndex + 1) % len(g.players)

	logrus.WithFields(logrus.Fields{
		"room":    g.roomID,
		"dealer":  g.players[g.dealerIndex].Username,
		"players": len(g.players),
	}).Debug("hand started")

	return nil
}

// blindSeats returns the small and big blind seat indexes. Heads-up, the
// dealer posts the small blind and acts first pre-flop.
func (g *Game) blindSeats() (int, int) {
	n := len(g.players)
	if n == 2 {
		return g.dealerIndex, (g.dealerIndex + 1) % n
	}

	return (g.dealerIndex + 1) % n, (g.dealerIndex + 2) % n
}

// postBet moves up to amount from the player's balance into the pot.
// A player without enough chips posts their remaining balance and is all-in.
func (g *Game) postBet(p *Player, amount int) {
	if p.chips <= amount {
		amount = p.chips
		p.allIn = true
	}

	p.chips -= amount
	p.bet += amount
	g.pot += amount
}

// PlayerAction applies a betting action for the player at the turn pointer.
// Illegal commands leave the game completely unchanged.
func (g *Game) PlayerAction(username string, act action.Action, amount int) error {
	if !g.active {
		return ErrNoActiveHand
	}

	player := g.players[g.turnIndex]
	if player.Username != username {
		return ErrNotYourTurn
	}

	switch act {
	case action.Fold:
		player.folded = true
		player.acted = true

	case action.Call:
		g.postBet(player, g.currentBet-player.bet)
		player.acted = true

	case action.Check:
		if player.bet != g.currentBet {
			return ErrMustCallOrFold
		}
		player.acted = true

	case action.Raise:
		if amount <= g.currentBet {
			return ErrIllegalRaise
		}

		g.postBet(player, amount-player.bet)
		g.currentBet = amount
		player.acted = true

		// a raise reopens the action for every other seat
		for _, other := range g.players {
			if other != player {
				other.acted = false
			}
		}

	default:
		return fmt.Errorf("unsupported action: %s", act)
	}

	return g.advanceTurn()
}

// advanceTurn moves the turn pointer after an accepted action, advancing
// the street or resolving the hand when the betting round is complete.
func (g *Game) advanceTurn() error {
	if g.countCanAct() <= 1 {
		return g.resolveShowdown()
	}

	n := len(g.players)
	nextIndex := g.turnIndex
	for i := 1; i <= n; i++ {
		nextIndex = (g.turnIndex + i) % n
		if g.players[nextIndex].canAct() {
			break
		}
	}

	if g.players[nextIndex].acted && g.allBetsMatched() {
		return g.advanceStreet()
	}

	g.turnIndex = nextIndex
	return nil
}

func (g *Game) countCanAct() int {
	count := 0
	for _, p := range g.players {
		if p.canAct() {
			count++
		}
	}

	return count
}

// allBetsMatched returns true when every player still able to act has
// matched the table's current bet
func (g *Game) allBetsMatched() bool {
	for _, p := range g.players {
		if p.canAct() && p.bet != g.currentBet {
			return false
		}
	}

	return true
}

// advanceStreet deals the next community cards and resets per-street betting
func (g *Game) advanceStreet() error {
	switch g.street {
	case StreetPreFlop:
		cards, err := g.deck.Deal(3)
		if err != nil {
			return g.abortHand(err)
		}
		g.community = append(g.community, cards...)
		g.street = StreetFlop

	case StreetFlop:
		cards, err := g.deck.Deal(1)
		if err != nil {
			return g.abortHand(err)
		}
		g.community = append(g.community, cards...)
		g.street = StreetTurn

	case StreetTurn:
		cards, err := g.deck.Deal(1)
		if err != nil {
			return g.abortHand(err)
		}
		g.community = append(g.community, cards...)
		g.street = StreetRiver

	case StreetRiver:
		return g.resolveShowdown()

	default:
		return ErrNoActiveHand
	}

	g.currentBet = 0
	for _, p := range g.players {
		p.bet = 0
		p.acted = false
	}

	g.turnIndex = g.firstToActAfterDealer()
	return nil
}

// firstToActAfterDealer returns the first seat after the dealer that can
// still make decisions
func (g *Game) firstToActAfterDealer() int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		index := (g.dealerIndex + i) % n
		if g.players[index].canAct() {
			return index
		}
	}

	return (g.dealerIndex + 1) % n
}

// resolveShowdown ends the hand and pays out the pot. A lone surviving
// player wins outright; otherwise the best evaluated hand over hole plus
// community cards wins, with exact ties splitting the pot evenly. An odd
// remainder goes to the earliest winning seat.
func (g *Game) resolveShowdown() error {
	g.street = StreetShowdown
	g.active = false

	contenders := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if !p.folded {
			contenders = append(contenders, p)
		}
	}

	if len(contenders) == 0 {
		// cannot happen: the folding player's opponent always survives
		return errors.New("no players remain in the hand")
	}

	var best handrank.Score
	winners := make([]*Player, 0, len(contenders))

	if len(contenders) == 1 {
		winners = append(winners, contenders[0])
	} else {
		for _, p := range contenders {
			score := handrank.Evaluate(append(p.hole.Clone(), g.community...))

			if len(winners) == 0 || score.Beats(best) {
				best = score
				winners = winners[:0]
				winners = append(winners, p)
			} else if score.Ties(best) {
				winners = append(winners, p)
			}
		}
	}

	share := g.pot / len(winners)
	remainder := g.pot % len(winners)

	g.winners = make([]string, len(winners))
	for i, w := range winners {
		payout := share
		if i == 0 {
			payout += remainder
		}

		w.chips += payout
		g.winners[i] = w.Username
	}

	g.pot = 0

	logrus.WithFields(logrus.Fields{
		"room":    g.roomID,
		"winners": g.winners,
		"hand":    best.Category.String(),
	}).Debug("hand resolved")

	return nil
}

// abortHand ends the hand without a payout. Deck exhaustion mid-hand is an
// invariant violation, not player input, so the whole hand is voided.
func (g *Game) abortHand(err error) error {
	g.active = false
	g.street = StreetWaiting
	g.winners = nil

	logrus.WithError(err).WithField("room", g.roomID).Error("hand aborted")
	return fmt.Errorf("hand aborted: %w", err)
}
