package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// GameStore is the interface for PuzzleGame lifecycle operations.
type GameStore interface {
	EnsureGame(ctx context.Context, number int, firstSeenAt time.Time) error
	GetGame(ctx context.Context, number int) (*Game, error)
	LatestGameNumber(ctx context.Context) (int, error)
	LatestGameSummaryPosted(ctx context.Context) (bool, error)
	AttachSolution(ctx context.Context, number int, solution Solution) error
	MarkSummaryPosted(ctx context.Context, number int) error
}

// EnsureGame creates a game row for the puzzle number if one does not
// exist. Concurrent submissions can race the check in the handler, so
// the unique constraint on the puzzle number is the success path for
// "already exists".
func (p *Postgres) EnsureGame(ctx context.Context, number int, firstSeenAt time.Time) error {
	query := "INSERT INTO strands_games (strands_game, created_at) VALUES ($1, $2) ON CONFLICT (strands_game) DO NOTHING"
	_, err := p.connections.ExecContext(ctx, query, number, firstSeenAt)
	if err != nil {
		return fmt.Errorf("error creating strands game %d: %w", number, err)
	}
	return nil
}

// GetGame returns the game row for the puzzle number, or nil when it has
// not been seen yet.
func (p *Postgres) GetGame(ctx context.Context, number int) (*Game, error) {
	var game Game
	query := "SELECT * FROM strands_games WHERE strands_game = $1"
	err := p.connections.GetContext(ctx, &game, query, number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting strands game %d: %w", number, err)
	}
	return &game, nil
}

// LatestGameNumber returns the highest known puzzle number, or 0 when no
// games have been recorded.
func (p *Postgres) LatestGameNumber(ctx context.Context) (int, error) {
	var number int
	query := "SELECT strands_game FROM strands_games ORDER BY strands_game DESC LIMIT 1"
	err := p.connections.GetContext(ctx, &number, query)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error getting latest strands game: %w", err)
	}
	return number, nil
}

// LatestGameSummaryPosted reports whether the daily summary has already
// been posted for the latest game. False when no games exist.
func (p *Postgres) LatestGameSummaryPosted(ctx context.Context) (bool, error) {
	var posted bool
	query := "SELECT summary_posted FROM strands_games ORDER BY strands_game DESC LIMIT 1"
	err := p.connections.GetContext(ctx, &posted, query)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error getting latest summary posted flag: %w", err)
	}
	return posted, nil
}

// AttachSolution stores the puzzle solution on the game row if it is not
// already set. It performs its own presence check, so callers can invoke
// it speculatively on every score submission.
func (p *Postgres) AttachSolution(ctx context.Context, number int, solution Solution) error {
	game, err := p.GetGame(ctx, number)
	if err != nil {
		return err
	}
	if game == nil {
		return fmt.Errorf("strands game %d does not exist", number)
	}
	if game.HasSolution() {
		return nil
	}

	themeWords, err := json.Marshal(map[string][]string{"themeWords": solution.ThemeWords})
	if err != nil {
		return fmt.Errorf("error encoding theme words: %w", err)
	}

	query := "UPDATE strands_games SET spangram = $1, clue = $2, theme_words = $3 WHERE strands_game = $4"
	_, err = p.connections.ExecContext(ctx, query, solution.Spangram, solution.Clue, themeWords, number)
	if err != nil {
		return fmt.Errorf("error attaching solution to strands game %d: %w", number, err)
	}
	return nil
}

// MarkSummaryPosted flips the summary_posted flag. Idempotent.
func (p *Postgres) MarkSummaryPosted(ctx context.Context, number int) error {
	query := "UPDATE strands_games SET summary_posted = TRUE WHERE strands_game = $1"
	_, err := p.connections.ExecContext(ctx, query, number)
	if err != nil {
		return fmt.Errorf("error marking summary posted for strands game %d: %w", number, err)
	}
	return nil
}
