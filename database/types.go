package database

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Game is a row in strands_games, one per puzzle number globally.
type Game struct {
	ID            int64          `db:"id"`
	Number        int            `db:"strands_game"`
	Spangram      sql.NullString `db:"spangram"`
	Clue          sql.NullString `db:"clue"`
	ThemeWords    types.JSONText `db:"theme_words"`
	SummaryPosted bool           `db:"summary_posted"`
	CreatedAt     time.Time      `db:"created_at"`
}

// HasSolution reports whether the puzzle solution has been attached.
func (g *Game) HasSolution() bool {
	return g.Spangram.Valid && g.Spangram.String != ""
}

// Solution is the puzzle metadata attached to a Game by the background
// lookup.
type Solution struct {
	Spangram   string
	Clue       string
	ThemeWords []string
}

// ScoreEntry is a row in strands_scores, one per
// (username, puzzle, guild, channel) tuple. Message retains the original
// result block so scores can be recomputed when the formula changes.
type ScoreEntry struct {
	ID          int64     `db:"id"`
	StrandsGame int       `db:"strands_game"`
	Username    string    `db:"username"`
	UserTag     string    `db:"user_tag"`
	UserID      string    `db:"user_id"`
	Message     string    `db:"message"`
	Score       int       `db:"score"`
	GuildID     string    `db:"guild_id"`
	ChannelID   string    `db:"channel_id"`
	PostedAt    time.Time `db:"posted_at"`
}

// AggregateSummary is a per-user aggregate over a window, ordered
// ascending by average (lower is better).
type AggregateSummary struct {
	Username   string  `db:"username"`
	Games      int     `db:"games"`
	TotalScore int     `db:"totalscore"`
	Average    float64 `db:"average"`
}

// GameScore is a single player's result for one puzzle.
type GameScore struct {
	Username string `db:"username"`
	Score    int    `db:"score"`
}

// ChatMessage is one turn of a stored AI conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
