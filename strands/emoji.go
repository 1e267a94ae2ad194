package strands

import "strconv"

var digitEmojis = [10]string{"0️⃣", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣"}

const (
	// repeatOneEmoji stands in for the second and later '1' digits, since
	// discord rejects duplicate reactions on a message.
	repeatOneEmoji = "🇮"
	unknownEmoji   = "⁉️"
	celebrateEmoji = "🥳"
)

// ScoreReactions converts a score into the ordered list of reaction
// emojis to add to the scoring message, one per digit. A perfect score of
// exactly 1 gets a celebratory extra.
func ScoreReactions(score int) []string {
	var reactions []string
	seenOne := false
	for _, digit := range strconv.Itoa(score) {
		switch {
		case digit == '1' && seenOne:
			reactions = append(reactions, repeatOneEmoji)
		case digit == '1':
			reactions = append(reactions, digitEmojis[1])
			seenOne = true
		case digit >= '0' && digit <= '9':
			reactions = append(reactions, digitEmojis[digit-'0'])
		default:
			reactions = append(reactions, unknownEmoji)
		}
	}

	if score == 1 {
		reactions = append(reactions, celebrateEmoji)
	}
	return reactions
}
