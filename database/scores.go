package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/puzzlehut/strands-bot/strands"
)

// ScoreStore is the interface for reading and writing score entries.
type ScoreStore interface {
	RecordScore(ctx context.Context, entry ScoreEntry) error
	GetScore(ctx context.Context, username string, number int, guildID, channelID string) (*ScoreEntry, error)
	TotalPlayers(ctx context.Context, guildID, channelID string) ([]string, error)
	PlayersForGame(ctx context.Context, number int, guildID, channelID string) ([]string, error)
	GameScores(ctx context.Context, number int, guildID, channelID string) ([]GameScore, error)
	OverallSummaries(ctx context.Context, guildID, channelID string) ([]AggregateSummary, error)
	Last7DaysSummaries(ctx context.Context, guildID, channelID string) ([]AggregateSummary, error)
	LastMonthSummaries(ctx context.Context, guildID, channelID string) ([]AggregateSummary, error)
	ReprocessScores(ctx context.Context) error
}

// RecordScore inserts a score entry. A second entry for the same
// (username, puzzle, guild, channel) tuple is silently ignored; the
// unique constraint absorbs concurrent duplicate submissions. Callers
// that need to distinguish a new play from a duplicate check GetScore
// first.
func (p *Postgres) RecordScore(ctx context.Context, entry ScoreEntry) error {
	query := `INSERT INTO strands_scores
		(strands_game, username, user_tag, user_id, message, score, guild_id, channel_id, posted_at)
		VALUES (:strands_game, :username, :user_tag, :user_id, :message, :score, :guild_id, :channel_id, :posted_at)
		ON CONFLICT ON CONSTRAINT strands_scores_one_per_play DO NOTHING`
	_, err := p.connections.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("error inserting strands score: %w", err)
	}
	return nil
}

// GetScore returns the user's entry for the puzzle in this guild and
// channel, or nil when the user has not played it.
func (p *Postgres) GetScore(ctx context.Context, username string, number int, guildID, channelID string) (*ScoreEntry, error) {
	var entry ScoreEntry
	query := `SELECT * FROM strands_scores
		WHERE username = $1 AND strands_game = $2 AND guild_id = $3 AND channel_id = $4`
	err := p.connections.GetContext(ctx, &entry, query, username, number, guildID, channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting strands score: %w", err)
	}
	return &entry, nil
}

// TotalPlayers returns the distinct usernames with at least one entry in
// the trailing 7 days, excluding the bot itself.
func (p *Postgres) TotalPlayers(ctx context.Context, guildID, channelID string) ([]string, error) {
	var players []string
	query := `SELECT DISTINCT(username) FROM strands_scores
		WHERE guild_id = $1 AND channel_id = $2 AND username != $3
		AND posted_at > now() - interval '7 days'`
	err := p.connections.SelectContext(ctx, &players, query, guildID, channelID, p.botName)
	if err != nil {
		return nil, fmt.Errorf("error getting total players: %w", err)
	}
	return players, nil
}

// PlayersForGame returns the distinct usernames with an entry for the
// puzzle in the trailing 7 days, excluding the bot itself.
func (p *Postgres) PlayersForGame(ctx context.Context, number int, guildID, channelID string) ([]string, error) {
	var players []string
	query := `SELECT DISTINCT(username) FROM strands_scores
		WHERE strands_game = $1 AND guild_id = $2 AND channel_id = $3 AND username != $4
		AND posted_at > now() - interval '7 days'`
	err := p.connections.SelectContext(ctx, &players, query, number, guildID, channelID, p.botName)
	if err != nil {
		return nil, fmt.Errorf("error getting players for game %d: %w", number, err)
	}
	return players, nil
}

// GameScores returns every non-bot player's score for the puzzle, lowest
// first. Unlike the player-set queries this is not bounded by the 7-day
// window, so a straggler finishing an old puzzle still shows up in
// today's winners.
func (p *Postgres) GameScores(ctx context.Context, number int, guildID, channelID string) ([]GameScore, error) {
	var scores []GameScore
	query := `SELECT username, score FROM strands_scores
		WHERE strands_game = $1 AND guild_id = $2 AND channel_id = $3 AND username != $4
		ORDER BY score ASC, posted_at`
	err := p.connections.SelectContext(ctx, &scores, query, number, guildID, channelID, p.botName)
	if err != nil {
		return nil, fmt.Errorf("error getting scores for game %d: %w", number, err)
	}
	return scores, nil
}

// OverallSummaries returns each user's all-time games, total, and average
// within the guild and channel, best average first.
func (p *Postgres) OverallSummaries(ctx context.Context, guildID, channelID string) ([]AggregateSummary, error) {
	var summaries []AggregateSummary
	query := `SELECT
			COUNT(*) AS games,
			SUM(score) AS totalscore,
			ROUND(CAST(SUM(score)::float/COUNT(*)::float AS numeric), 2) AS average,
			username
		FROM strands_scores
		WHERE guild_id = $1 AND channel_id = $2
		GROUP BY username
		ORDER BY average ASC`
	err := p.connections.SelectContext(ctx, &summaries, query, guildID, channelID)
	if err != nil {
		return nil, fmt.Errorf("error getting overall summaries: %w", err)
	}
	return summaries, nil
}

// Last7DaysSummaries is OverallSummaries restricted to entries posted in
// the trailing 7 days.
func (p *Postgres) Last7DaysSummaries(ctx context.Context, guildID, channelID string) ([]AggregateSummary, error) {
	var summaries []AggregateSummary
	query := `SELECT
			COUNT(*) AS games,
			SUM(score) AS totalscore,
			ROUND(CAST(SUM(score)::float/COUNT(*)::float AS numeric), 2) AS average,
			username
		FROM strands_scores
		WHERE posted_at > now() - interval '7 days' AND guild_id = $1 AND channel_id = $2
		GROUP BY username
		ORDER BY average ASC`
	err := p.connections.SelectContext(ctx, &summaries, query, guildID, channelID)
	if err != nil {
		return nil, fmt.Errorf("error getting 7 day summaries: %w", err)
	}
	return summaries, nil
}

// LastMonthSummaries aggregates the previous calendar month, joined
// against game dates rather than submission dates, and only includes
// users with at least 10 games that month.
func (p *Postgres) LastMonthSummaries(ctx context.Context, guildID, channelID string) ([]AggregateSummary, error) {
	var summaries []AggregateSummary
	query := `SELECT games, totalscore, average, username FROM (SELECT
			COUNT(*) AS games,
			SUM(s.score) AS totalscore,
			ROUND(CAST(SUM(s.score)::float/COUNT(*)::float AS numeric), 2) AS average,
			s.username
		FROM strands_scores s JOIN strands_games g ON g.strands_game = s.strands_game
		WHERE
			EXTRACT('MONTH' FROM g.created_at) = EXTRACT('MONTH' FROM now() - interval '1 month')
			AND EXTRACT('YEAR' FROM g.created_at) = EXTRACT('YEAR' FROM now() - interval '1 month')
			AND s.guild_id = $1 AND s.channel_id = $2
		GROUP BY s.username
		ORDER BY average ASC) AS summary WHERE games >= 10`
	err := p.connections.SelectContext(ctx, &summaries, query, guildID, channelID)
	if err != nil {
		return nil, fmt.Errorf("error getting last month summaries: %w", err)
	}
	return summaries, nil
}

// ReprocessScores recomputes every stored score from its raw message.
// Used as a maintenance pass when the scoring formula changes; safe to
// run while normal writes continue, later writes simply win.
func (p *Postgres) ReprocessScores(ctx context.Context) error {
	type storedScore struct {
		ID      int64  `db:"id"`
		Message string `db:"message"`
	}

	var stored []storedScore
	if err := p.connections.SelectContext(ctx, &stored, "SELECT id, message FROM strands_scores"); err != nil {
		return fmt.Errorf("error loading scores for reprocessing: %w", err)
	}
	p.logger.Info("reprocessing scores", "count", len(stored))

	for _, row := range stored {
		// rows written by old versions stored escaped newlines
		message := strings.ReplaceAll(row.Message, `\n`, "\n")
		result, err := strands.Parse(message)
		if err != nil {
			p.logger.Error("skipping unparseable stored message", "id", row.ID, "error", err.Error())
			continue
		}
		query := "UPDATE strands_scores SET message = $1, score = $2 WHERE id = $3"
		if _, err := p.connections.ExecContext(ctx, query, message, result.Score, row.ID); err != nil {
			return fmt.Errorf("error updating score %d: %w", row.ID, err)
		}
	}

	p.logger.Info("finished reprocessing scores")
	return nil
}
