package strands

// Action is the follow-up triggered after a new score lands.
type Action int

const (
	// ActionNone means no automatic follow-up
	ActionNone Action = iota
	// ActionPostSummary means everyone is done, post the daily summary
	ActionPostSummary
	// ActionNagTarget means only the designated target is left, post the
	// who-is-left notice
	ActionNagTarget
)

// Remaining returns the players in totalPlayers that do not appear in
// gamePlayers, preserving order.
func Remaining(totalPlayers, gamePlayers []string) []string {
	played := make(map[string]struct{}, len(gamePlayers))
	for _, player := range gamePlayers {
		played[player] = struct{}{}
	}

	remaining := []string{}
	for _, player := range totalPlayers {
		if _, ok := played[player]; !ok {
			remaining = append(remaining, player)
		}
	}
	return remaining
}

// Decide applies the auto-trigger decision table: an empty remaining list
// posts the full summary, a single remaining player posts the nag notice
// only when that player is the designated target. Two or more remaining
// players trigger nothing; the full absentee notice is only produced on
// the manual or scheduled path.
func Decide(remaining []string, target string) Action {
	switch {
	case len(remaining) == 0:
		return ActionPostSummary
	case len(remaining) == 1 && remaining[0] == target:
		return ActionNagTarget
	default:
		return ActionNone
	}
}
