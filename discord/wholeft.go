package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/puzzlehut/strands-bot/ai"
	"github.com/puzzlehut/strands-bot/config"
	"github.com/puzzlehut/strands-bot/logging"
	"github.com/puzzlehut/strands-bot/metrics"
	"github.com/puzzlehut/strands-bot/strands"
	"golang.org/x/sync/errgroup"
)

const embedColor = 0x4169e1

// WhoLeftCommand posts an embed listing everyone who has not completed
// the latest puzzle. When the configured target is among them the entry
// is flavored with a generated insult.
type WhoLeftCommand struct {
	db       Store
	insulter ai.Insulter
	cfg      *config.Config
	logger   *logging.Logger
}

func (c *WhoLeftCommand) Execute(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, channelID string) error {
	dest, err := resolveDestination(s, i, channelID)
	if err != nil {
		return err
	}
	dest.acknowledge(s)

	latest, err := c.db.LatestGameNumber(ctx)
	if err != nil {
		return err
	}

	var total, played []string
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		total, err = c.db.TotalPlayers(egCtx, dest.guildID, dest.channelID)
		return err
	})
	eg.Go(func() error {
		var err error
		played, err = c.db.PlayersForGame(egCtx, latest, dest.guildID, dest.channelID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	remaining := strands.Remaining(total, played)
	embed := c.buildEmbed(ctx, latest, remaining)

	if err := c.send(s, dest, embed); err != nil {
		return err
	}
	metrics.AbsenteeNotices.Add(1)
	return nil
}

func (c *WhoLeftCommand) buildEmbed(ctx context.Context, latest int, remaining []string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color: embedColor,
	}

	switch {
	case len(remaining) == 0:
		embed.Title = fmt.Sprintf("Everyone is done with %d", latest)
		embed.Description = "Well done everyone."
		return embed
	case len(remaining) == 1 && remaining[0] == c.cfg.InsultUserName:
		embed.Title = fmt.Sprintf("Once again %s is the last one remaining...", c.cfg.DisplayName(c.cfg.InsultUserName))
	case len(remaining) == 1:
		embed.Title = "One player Remaining"
	default:
		embed.Title = "People not done"
	}

	for _, player := range remaining {
		value := fmt.Sprintf("Has not completed Strands %d", latest)
		if player == c.cfg.InsultUserName {
			value = c.insultFor(ctx, latest)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  c.cfg.DisplayName(player),
			Value: value,
		})
	}
	if c.cfg.FooterMessage != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: c.cfg.FooterMessage}
	}
	return embed
}

// insultFor returns a generated insult, falling back to a canned
// template when generation is disabled or fails.
func (c *WhoLeftCommand) insultFor(ctx context.Context, latest int) string {
	if c.insulter == nil {
		return ai.Fallback(latest)
	}
	text, err := c.insulter.Insult(ctx, latest)
	if err != nil {
		c.logger.Error("unable to generate insult", "error", err.Error())
		metrics.InsultFallbacksUsedCount.Add(1)
		return ai.Fallback(latest)
	}
	return text
}

func (c *WhoLeftCommand) send(s *discordgo.Session, dest destination, embed *discordgo.MessageEmbed) error {
	var err error
	if dest.interaction != nil {
		_, err = s.FollowupMessageCreate(dest.interaction.Interaction, true, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{embed},
		})
	} else {
		_, err = s.ChannelMessageSendEmbed(dest.channelID, embed)
	}
	if err != nil {
		return fmt.Errorf("unable to post who left: %w", err)
	}
	metrics.DiscordMessageSent.Add(1)
	return nil
}
