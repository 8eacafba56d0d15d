package models

// MatchRules is the scoring configuration for one match. Immutable once a
// match goes live; rules may differ per round (e.g. finals vs. earlier
// rounds).
type MatchRules struct {
	FirstTo int `json:"first_to"`
	WinBy   int `json:"win_by"`
	Cap     int `json:"cap"`
	BestOf  int `json:"best_of"`
}

// SetsToWin is the number of set wins that decides a match.
func (r MatchRules) SetsToWin() int {
	return r.BestOf/2 + 1
}
