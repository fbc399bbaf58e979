package handrank

// Score is a totally-ordered hand strength: the category first, then the
// kicker ranks that break ties within the category, highest-priority first.
type Score struct {
	Category Category `json:"category"`
	Kickers  []int    `json:"kickers"`
}

// Compare returns a negative number if s is weaker than other, a positive
// number if s is stronger, and zero if the hands tie exactly.
func (s Score) Compare(other Score) int {
	if s.Category != other.Category {
		return int(s.Category) - int(other.Category)
	}

	n := len(s.Kickers)
	if len(other.Kickers) < n {
		n = len(other.Kickers)
	}

	for i := 0; i < n; i++ {
		if s.Kickers[i] != other.Kickers[i] {
			return s.Kickers[i] - other.Kickers[i]
		}
	}

	return len(s.Kickers) - len(other.Kickers)
}

// Beats returns true if s is strictly stronger than other
func (s Score) Beats(other Score) bool {
	return s.Compare(other) > 0
}

// Ties returns true if the two scores are exactly equal
func (s Score) Ties(other Score) bool {
	return s.Compare(other) == 0
}
