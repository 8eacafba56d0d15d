package brackets

import "fmt"

// RoundName maps the round number to its display name. Round 1 is always
// the final.
func RoundName(round int) string {
	switch round {
	case 1:
		return "Finals"
	case 2:
		return "Semi-Finals"
	case 3:
		return "Quarter-Finals"
	case 4:
		return "Round of 16"
	case 5:
		return "Round of 32"
	default:
		return fmt.Sprintf("Round %d", round)
	}
}
