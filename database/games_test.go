package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gameColumns() []string {
	return []string{"id", "strands_game", "spangram", "clue", "theme_words",
		"summary_posted", "created_at"}
}

func TestEnsureGame(t *testing.T) {
	postgres, mock := newMockStore(t)

	firstSeen := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO strands_games").
		WithArgs(125, firstSeen).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, postgres.EnsureGame(context.Background(), 125, firstSeen))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureGameAlreadyExists(t *testing.T) {
	postgres, mock := newMockStore(t)

	firstSeen := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	// conflict on the unique puzzle number is the success path
	mock.ExpectExec("INSERT INTO strands_games").
		WithArgs(125, firstSeen).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, postgres.EnsureGame(context.Background(), 125, firstSeen))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestGameNumber(t *testing.T) {
	postgres, mock := newMockStore(t)

	mock.ExpectQuery("SELECT strands_game FROM strands_games ORDER BY strands_game DESC").
		WillReturnRows(sqlmock.NewRows([]string{"strands_game"}).AddRow(321))

	number, err := postgres.LatestGameNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 321, number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestGameNumberEmpty(t *testing.T) {
	postgres, mock := newMockStore(t)

	mock.ExpectQuery("SELECT strands_game FROM strands_games ORDER BY strands_game DESC").
		WillReturnRows(sqlmock.NewRows([]string{"strands_game"}))

	number, err := postgres.LatestGameNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachSolution(t *testing.T) {
	postgres, mock := newMockStore(t)

	rows := sqlmock.NewRows(gameColumns()).
		AddRow(1, 125, nil, nil, nil, false, time.Now())
	mock.ExpectQuery("SELECT \\* FROM strands_games").
		WithArgs(125).
		WillReturnRows(rows)

	mock.ExpectExec("UPDATE strands_games SET spangram").
		WithArgs("HOMESTRETCH", "By the yard", []byte(`{"themeWords":["yardstick","garden"]}`), 125).
		WillReturnResult(sqlmock.NewResult(0, 1))

	solution := Solution{
		Spangram:   "HOMESTRETCH",
		Clue:       "By the yard",
		ThemeWords: []string{"yardstick", "garden"},
	}
	assert.NoError(t, postgres.AttachSolution(context.Background(), 125, solution))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachSolutionAlreadySet(t *testing.T) {
	postgres, mock := newMockStore(t)

	rows := sqlmock.NewRows(gameColumns()).
		AddRow(1, 125, "HOMESTRETCH", "By the yard", []byte(`{}`), false, time.Now())
	mock.ExpectQuery("SELECT \\* FROM strands_games").
		WithArgs(125).
		WillReturnRows(rows)

	// no UPDATE expected
	assert.NoError(t, postgres.AttachSolution(context.Background(), 125, Solution{Spangram: "OTHER"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachSolutionMissingGame(t *testing.T) {
	postgres, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM strands_games").
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows(gameColumns()))

	assert.Error(t, postgres.AttachSolution(context.Background(), 999, Solution{Spangram: "X"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSummaryPosted(t *testing.T) {
	postgres, mock := newMockStore(t)

	mock.ExpectExec("UPDATE strands_games SET summary_posted = TRUE").
		WithArgs(125).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, postgres.MarkSummaryPosted(context.Background(), 125))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestGameSummaryPosted(t *testing.T) {
	postgres, mock := newMockStore(t)

	mock.ExpectQuery("SELECT summary_posted FROM strands_games").
		WillReturnRows(sqlmock.NewRows([]string{"summary_posted"}).AddRow(true))

	posted, err := postgres.LatestGameSummaryPosted(context.Background())
	require.NoError(t, err)
	assert.True(t, posted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
