package holdem

import "pokerverse-server/pkg/deck"

// State is a broadcast-ready snapshot of the game.
// Hole cards are included for every seat; clients are trusted to hide the
// other players' cards. That is an acknowledged simplification.
type State struct {
	RoomID     string       `json:"roomId"`
	Pot        int          `json:"pot"`
	Street     Street       `json:"street"`
	Community  deck.Hand    `json:"communityCards"`
	CurrentBet int          `json:"currentBet"`
	Active     bool         `json:"active"`
	Players    []*SeatState `json:"players"`
	Winners    []string     `json:"winners"`
}

// SeatState is one player's slice of the snapshot
type SeatState struct {
	Username string    `json:"username"`
	Chips    int       `json:"chips"`
	Bet      int       `json:"currentBet"`
	Folded   bool      `json:"folded"`
	AllIn    bool      `json:"allIn"`
	IsTurn   bool      `json:"isTurn"`
	Cards    deck.Hand `json:"cards"`
}

// State returns a snapshot of the game in seat order
func (g *Game) State() *State {
	players := make([]*SeatState, len(g.players))
	for i, p := range g.players {
		players[i] = &SeatState{
			Username: p.Username,
			Chips:    p.chips,
			Bet:      p.bet,
			Folded:   p.folded,
			AllIn:    p.allIn,
			IsTurn:   g.active && i == g.turnIndex,
			Cards:    p.hole,
		}
	}

	return &State{
		RoomID:     g.roomID,
		Pot:        g.pot,
		Street:     g.street,
		Community:  g.community,
		CurrentBet: g.currentBet,
		Active:     g.active,
		Players:    players,
		Winners:    g.winners,
	}
}
