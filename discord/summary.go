package discord

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/puzzlehut/strands-bot/config"
	"github.com/puzzlehut/strands-bot/database"
	"github.com/puzzlehut/strands-bot/images"
	"github.com/puzzlehut/strands-bot/leaderboard"
	"github.com/puzzlehut/strands-bot/logging"
	"github.com/puzzlehut/strands-bot/metrics"
	"golang.org/x/sync/errgroup"
)

const spoilerFileName = "SPOILER_FILE.gif"

// SummaryCommand posts the leaderboard table plus leaders and today's
// winners, with a spoilered spangram gif when one can be found.
type SummaryCommand struct {
	db         Store
	images     images.Searcher
	cfg        *config.Config
	logger     *logging.Logger
	httpClient *http.Client
}

// Execute builds and posts the summary. The image lookup is best
// effort, everything else is required.
func (c *SummaryCommand) Execute(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, channelID string) error {
	dest, err := resolveDestination(s, i, channelID)
	if err != nil {
		return err
	}
	dest.acknowledge(s)

	latest, err := c.db.LatestGameNumber(ctx)
	if err != nil {
		return err
	}
	if latest == 0 {
		return c.send(s, dest, "No Strands scores recorded yet.", "")
	}

	var (
		game    *database.Game
		overall []database.AggregateSummary
		day7    []database.AggregateSummary
		todays  []database.GameScore
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		game, err = c.db.GetGame(egCtx, latest)
		return err
	})
	eg.Go(func() error {
		var err error
		overall, err = c.db.OverallSummaries(egCtx, dest.guildID, dest.channelID)
		return err
	})
	eg.Go(func() error {
		var err error
		day7, err = c.db.Last7DaysSummaries(egCtx, dest.guildID, dest.channelID)
		return err
	})
	eg.Go(func() error {
		var err error
		todays, err = c.db.GameScores(egCtx, latest, dest.guildID, dest.channelID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	// look up the gif while the message is assembled
	imageChan := make(chan string, 1)
	go func() {
		imageChan <- c.lookupImage(ctx, game)
	}()

	table := leaderboard.RenderTable(overall, day7, c.cfg.DisplayName)
	message := leaderboard.BuildMessage(
		table,
		leaderboard.Leader(overall, c.cfg.BotName),
		leaderboard.Leader(day7, c.cfg.BotName),
		leaderboard.TodaysWinners(todays, c.cfg.BotName),
		c.cfg.DisplayName,
		c.cfg.FooterMessage,
	)

	if err := c.send(s, dest, message, <-imageChan); err != nil {
		return err
	}
	metrics.SummariesPosted.Add(1)

	if err := c.db.MarkSummaryPosted(ctx, latest); err != nil {
		c.logger.Error("unable to mark summary posted", "game", latest, "error", err.Error())
	}
	return nil
}

// lookupImage returns a gif url for the latest game's spangram, or ""
// when no searcher is configured, no solution is attached, or the
// lookup fails.
func (c *SummaryCommand) lookupImage(ctx context.Context, game *database.Game) string {
	if c.images == nil || game == nil || !game.HasSolution() {
		return ""
	}
	url, err := c.images.FirstGIF(ctx, game.Spangram.String)
	if err != nil {
		metrics.ImageLookupFailures.Add(1)
		c.logger.Error("unable to find gif", "query", game.Spangram.String, "error", err.Error())
		return ""
	}
	return url
}

func (c *SummaryCommand) send(s *discordgo.Session, dest destination, message, imageURL string) error {
	files := c.downloadAttachment(imageURL)
	defer func() {
		for _, f := range files {
			if closer, ok := f.Reader.(io.Closer); ok {
				closer.Close()
			}
		}
	}()

	var err error
	if dest.interaction != nil {
		_, err = s.FollowupMessageCreate(dest.interaction.Interaction, true, &discordgo.WebhookParams{
			Content: message,
			Files:   files,
		})
	} else {
		_, err = s.ChannelMessageSendComplex(dest.channelID, &discordgo.MessageSend{
			Content: message,
			Files:   files,
		})
	}
	if err != nil {
		return fmt.Errorf("unable to post summary: %w", err)
	}
	metrics.DiscordMessageSent.Add(1)
	return nil
}

// downloadAttachment fetches the gif so it can be attached spoilered.
// Any failure degrades to a text only summary.
func (c *SummaryCommand) downloadAttachment(imageURL string) []*discordgo.File {
	if imageURL == "" {
		return nil
	}
	resp, err := c.httpClient.Get(imageURL)
	if err != nil {
		metrics.ImageLookupFailures.Add(1)
		c.logger.Error("unable to download gif", "url", imageURL, "error", err.Error())
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		metrics.ImageLookupFailures.Add(1)
		c.logger.Error("unable to download gif", "url", imageURL, "status", resp.StatusCode)
		return nil
	}
	return []*discordgo.File{{
		Name:        spoilerFileName,
		ContentType: "image/gif",
		Reader:      resp.Body,
	}}
}
