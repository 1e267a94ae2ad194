package discord

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/puzzlehut/strands-bot/config"
	"github.com/puzzlehut/strands-bot/database"
	"github.com/puzzlehut/strands-bot/logging"
	"github.com/stretchr/testify/require"
)

func TestExecuteWithoutDestination(t *testing.T) {
	cfg := config.Default()
	logger := logging.Default()

	summary := &SummaryCommand{cfg: cfg, logger: logger}
	wholeft := &WhoLeftCommand{cfg: cfg, logger: logger}
	monthly := &MonthlyCommand{cfg: cfg, logger: logger}

	require.ErrorIs(t, summary.Execute(context.Background(), nil, nil, ""), ErrNoDestination)
	require.ErrorIs(t, wholeft.Execute(context.Background(), nil, nil, ""), ErrNoDestination)
	require.ErrorIs(t, monthly.Execute(context.Background(), nil, nil, ""), ErrNoDestination)
}

func TestUntilNext(t *testing.T) {
	now := time.Date(2024, time.June, 1, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		hour   int
		minute int
		want   time.Duration
	}{
		{name: "later today", hour: 20, minute: 0, want: 90 * time.Minute},
		{name: "already passed rolls to tomorrow", hour: 18, minute: 0, want: 23*time.Hour + 30*time.Minute},
		{name: "exactly now rolls to tomorrow", hour: 18, minute: 30, want: 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, untilNext(now, tt.hour, tt.minute))
		})
	}
}

func TestWhoLeftEmbed(t *testing.T) {
	cfg := config.Default()
	cfg.InsultUserName = "slowpoke"
	cfg.UserToNameMap = map[string]string{"slowpoke": "Sam"}
	cmd := &WhoLeftCommand{cfg: cfg, logger: logging.Default()}
	ctx := context.Background()

	t.Run("everyone done", func(t *testing.T) {
		embed := cmd.buildEmbed(ctx, 321, nil)
		require.Equal(t, "Everyone is done with 321", embed.Title)
		require.Empty(t, embed.Fields)
	})

	t.Run("only the target left", func(t *testing.T) {
		embed := cmd.buildEmbed(ctx, 321, []string{"slowpoke"})
		require.Equal(t, "Once again Sam is the last one remaining...", embed.Title)
		require.Len(t, embed.Fields, 1)
		require.Equal(t, "Sam", embed.Fields[0].Name)
		// nil insulter falls back to a canned line mentioning the game
		require.Contains(t, embed.Fields[0].Value, "321")
	})

	t.Run("one other player left", func(t *testing.T) {
		embed := cmd.buildEmbed(ctx, 321, []string{"alice"})
		require.Equal(t, "One player Remaining", embed.Title)
		require.Equal(t, "Has not completed Strands 321", embed.Fields[0].Value)
	})

	t.Run("several left", func(t *testing.T) {
		embed := cmd.buildEmbed(ctx, 321, []string{"alice", "bob"})
		require.Equal(t, "People not done", embed.Title)
		require.Len(t, embed.Fields, 2)
	})
}

type stubInsulter struct {
	text string
	err  error
}

func (s *stubInsulter) Insult(_ context.Context, _ int) (string, error) {
	return s.text, s.err
}

func TestInsultFor(t *testing.T) {
	cfg := config.Default()
	logger := logging.Default()

	t.Run("uses the generated insult", func(t *testing.T) {
		cmd := &WhoLeftCommand{cfg: cfg, logger: logger, insulter: &stubInsulter{text: "get on with it"}}
		require.Equal(t, "get on with it", cmd.insultFor(context.Background(), 5))
	})

	t.Run("falls back on error", func(t *testing.T) {
		cmd := &WhoLeftCommand{cfg: cfg, logger: logger, insulter: &stubInsulter{err: fmt.Errorf("model offline")}}
		got := cmd.insultFor(context.Background(), 5)
		require.NotEmpty(t, got)
		require.Contains(t, got, "5")
	})
}

func TestLookupImageSkips(t *testing.T) {
	cmd := &SummaryCommand{cfg: config.Default(), logger: logging.Default()}
	ctx := context.Background()

	require.Empty(t, cmd.lookupImage(ctx, nil))
	require.Empty(t, cmd.lookupImage(ctx, &database.Game{Number: 1}))
}

func TestCommandNames(t *testing.T) {
	for _, cmd := range AddCommands() {
		require.True(t, strings.HasPrefix(cmd.Name, "strands"), "command %q should be namespaced", cmd.Name)
		require.NotEmpty(t, cmd.Description)
	}
}
