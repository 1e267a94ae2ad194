package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/puzzlehut/strands-bot/config"
	"github.com/puzzlehut/strands-bot/leaderboard"
	"github.com/puzzlehut/strands-bot/logging"
	"github.com/puzzlehut/strands-bot/metrics"
)

// MonthlyCommand posts last calendar month's averages for players with
// at least ten games.
type MonthlyCommand struct {
	db     Store
	cfg    *config.Config
	logger *logging.Logger
}

func (c *MonthlyCommand) Execute(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, channelID string) error {
	dest, err := resolveDestination(s, i, channelID)
	if err != nil {
		return err
	}
	dest.acknowledge(s)

	rows, err := c.db.LastMonthSummaries(ctx, dest.guildID, dest.channelID)
	if err != nil {
		return err
	}

	message := "No one qualified last month (10 game minimum)."
	if len(rows) > 0 {
		message = "```\n" + leaderboard.RenderMonthly(rows, c.cfg.DisplayName) + "```"
	}

	if dest.interaction != nil {
		_, err = s.FollowupMessageCreate(dest.interaction.Interaction, true, &discordgo.WebhookParams{
			Content: message,
		})
	} else {
		_, err = s.ChannelMessageSend(dest.channelID, message)
	}
	if err != nil {
		return fmt.Errorf("unable to post monthly summary: %w", err)
	}
	metrics.DiscordMessageSent.Add(1)
	return nil
}
