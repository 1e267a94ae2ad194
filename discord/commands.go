package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/puzzlehut/strands-bot/metrics"
)

// ErrNoDestination is returned when a command is invoked with neither an
// interaction nor a channel to post the result to.
var ErrNoDestination = errors.New("no interaction or channel to send to")

// destination is where a command's output goes. Commands invoked by a
// slash command carry an interaction; commands fired by the scheduler or
// the message handler only carry a channel.
type destination struct {
	guildID     string
	channelID   string
	interaction *discordgo.InteractionCreate
}

func resolveDestination(s *discordgo.Session, i *discordgo.InteractionCreate, channelID string) (destination, error) {
	if i != nil {
		return destination{guildID: i.GuildID, channelID: i.ChannelID, interaction: i}, nil
	}
	if channelID != "" {
		channel, err := s.Channel(channelID)
		if err != nil {
			return destination{}, err
		}
		return destination{guildID: channel.GuildID, channelID: channelID}, nil
	}
	return destination{}, ErrNoDestination
}

// acknowledge defers the interaction response so the slow path (queries
// plus an image lookup) does not trip discord's 3 second deadline. No-op
// when the command was not invoked via an interaction.
func (d destination) acknowledge(s *discordgo.Session) {
	if d.interaction == nil {
		return
	}
	_ = s.InteractionRespond(d.interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

// AddCommands returns the slash commands the bot registers on startup.
func AddCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "strandssummary",
			Description: "Displays the current Strands summary.",
		},
		{
			Name:        "strandswholeft",
			Description: "Posts who has not completed today's Strands.",
		},
		{
			Name:        "strandsmonthly",
			Description: "Displays last month's averages (10 game minimum).",
		},
	}
}

// MakeCommandHandlers maps command names to their handlers.
func (c *Client) MakeCommandHandlers() map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"strandssummary": c.runInteraction("strandssummary", func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
			return c.summary.Execute(ctx, s, i, "")
		}),
		"strandswholeft": c.runInteraction("strandswholeft", func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
			return c.wholeft.Execute(ctx, s, i, "")
		}),
		"strandsmonthly": c.runInteraction("strandsmonthly", func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
			return c.monthly.Execute(ctx, s, i, "")
		}),
	}
}

func (c *Client) runInteraction(name string, fn func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		timer := prometheus.NewTimer(metrics.CommandDuration.WithLabelValues(name))
		defer timer.ObserveDuration()
		metrics.CommandTotal.WithLabelValues(name).Inc()

		if err := fn(context.Background(), s, i); err != nil {
			metrics.CommandErrors.WithLabelValues(name).Inc()
			c.logger.Error("command failed", "command", name, "error", err.Error())
			_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: "There was an error while executing this command.",
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			})
		}
	}
}
