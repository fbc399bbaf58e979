package action

import (
	"encoding/json"
	"fmt"
)

// Action represents a betting action a player can take on their turn
type Action string

// action constants
const (
	Fold  Action = "fold"
	Check Action = "check"
	Call  Action = "call"
	Raise Action = "raise"
)

var allowedActions = map[Action]bool{
	Fold:  true,
	Check: true,
	Call:  true,
	Raise: true,
}

// FromString returns an action for the given string
func FromString(s string) (Action, error) {
	if _, ok := allowedActions[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	switch a {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	}

	panic("unknown action")
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}

// IsValid returns true if the action is permitted
func (a Action) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}
