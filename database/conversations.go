package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ConversationStore persists named AI conversation histories. Each
// history is replaced wholesale on update, read-modify-write.
type ConversationStore interface {
	GetMessages(ctx context.Context, name string) ([]ChatMessage, error)
	SaveMessages(ctx context.Context, name string, messages []ChatMessage) error
}

type conversationEnvelope struct {
	Messages []ChatMessage `json:"messages"`
}

// GetMessages returns the stored conversation history, or nil when the
// name has never been used.
func (p *Postgres) GetMessages(ctx context.Context, name string) ([]ChatMessage, error) {
	var raw []byte
	query := "SELECT messages FROM strands_conversations WHERE name = $1"
	err := p.connections.GetContext(ctx, &raw, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting conversation %q: %w", name, err)
	}

	var envelope conversationEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("error decoding conversation %q: %w", name, err)
	}
	return envelope.Messages, nil
}

// SaveMessages stores the conversation history under the name, creating
// the row on first use and replacing the whole list otherwise.
func (p *Postgres) SaveMessages(ctx context.Context, name string, messages []ChatMessage) error {
	raw, err := json.Marshal(conversationEnvelope{Messages: messages})
	if err != nil {
		return fmt.Errorf("error encoding conversation %q: %w", name, err)
	}

	query := `INSERT INTO strands_conversations (name, messages) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET messages = EXCLUDED.messages`
	if _, err := p.connections.ExecContext(ctx, query, name, raw); err != nil {
		return fmt.Errorf("error saving conversation %q: %w", name, err)
	}
	return nil
}
