package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMessages(t *testing.T) {
	postgres, mock := newMockStore(t)

	raw := `{"messages":[{"role":"user","content":"Generate an insult for Strands Game 125"},{"role":"assistant","content":"still not done?"}]}`
	mock.ExpectQuery("SELECT messages FROM strands_conversations").
		WithArgs("strandsInsults").
		WillReturnRows(sqlmock.NewRows([]string{"messages"}).AddRow([]byte(raw)))

	messages, err := postgres.GetMessages(context.Background(), "strandsInsults")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "still not done?", messages[1].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMessagesUnknownName(t *testing.T) {
	postgres, mock := newMockStore(t)

	mock.ExpectQuery("SELECT messages FROM strands_conversations").
		WithArgs("nothere").
		WillReturnRows(sqlmock.NewRows([]string{"messages"}))

	messages, err := postgres.GetMessages(context.Background(), "nothere")
	require.NoError(t, err)
	assert.Nil(t, messages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveMessages(t *testing.T) {
	postgres, mock := newMockStore(t)

	messages := []ChatMessage{
		{Role: "user", Content: "Generate an insult for Strands Game 125"},
		{Role: "assistant", Content: "still not done?"},
	}
	expected := []byte(`{"messages":[{"role":"user","content":"Generate an insult for Strands Game 125"},{"role":"assistant","content":"still not done?"}]}`)

	mock.ExpectExec("INSERT INTO strands_conversations").
		WithArgs("strandsInsults", expected).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, postgres.SaveMessages(context.Background(), "strandsInsults", messages))
	assert.NoError(t, mock.ExpectationsWereMet())
}
