package holdem

import "encoding/json"

// Street represents the betting phase of a hand
type Street int

// constants for Street
const (
	StreetWaiting Street = iota
	StreetPreFlop
	StreetFlop
	StreetTurn
	StreetRiver
	StreetShowdown
)

func (s Street) String() string {
	switch s {
	case StreetWaiting:
		return "waiting"
	case StreetPreFlop:
		return "pre-flop"
	case StreetFlop:
		return "flop"
	case StreetTurn:
		return "turn"
	case StreetRiver:
		return "river"
	case StreetShowdown:
		return "showdown"
	}

	return ""
}

// MarshalJSON encodes JSON
func (s Street) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}
