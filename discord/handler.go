package discord

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/puzzlehut/strands-bot/database"
	"github.com/puzzlehut/strands-bot/metrics"
	"github.com/puzzlehut/strands-bot/strands"
)

// textCommands lets users trigger the slash commands by typing them as
// plain messages. The triggering message is deleted to keep the channel
// clean.
func (c *Client) textCommand(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if !strings.HasPrefix(m.Content, "!") && !strings.HasPrefix(m.Content, "/") {
		return false
	}
	name := strings.TrimLeft(strings.Fields(m.Content)[0], "!/")

	var run func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, channelID string) error
	switch name {
	case "strandssummary":
		run = c.summary.Execute
	case "strandswholeft":
		run = c.wholeft.Execute
	case "strandsmonthly":
		run = c.monthly.Execute
	default:
		return false
	}

	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		c.logger.Error("unable to delete command message", "error", err.Error())
	}
	if err := run(context.Background(), s, nil, m.ChannelID); err != nil {
		metrics.CommandErrors.WithLabelValues(name).Inc()
		c.logger.Error("command failed", "command", name, "error", err.Error())
	}
	return true
}

func (c *Client) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	metrics.DiscordMessageRecieved.Add(1)
	if m.Author == nil {
		return
	}
	if c.textCommand(s, m) {
		return
	}
	if _, ok := strands.Recognize(m.Content); !ok {
		return
	}
	c.addScore(context.Background(), s, m.Message)
}

// handleMessageUpdate covers players who post a result and then fix it.
// An edit only counts when there is no recorded score yet for that
// player and puzzle.
func (c *Client) handleMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if m.Message == nil || m.Author == nil {
		return
	}
	metrics.DiscordMessageRecieved.Add(1)
	if _, ok := strands.Recognize(m.Content); !ok {
		return
	}
	ctx := context.Background()
	result, err := strands.Parse(m.Content)
	if err != nil {
		c.logger.Error("edited message failed to parse", "error", err.Error())
		return
	}

	existing, err := c.db.GetScore(ctx, m.Author.Username, result.PuzzleNumber, m.GuildID, m.ChannelID)
	if err != nil {
		c.logger.Error("unable to check for existing score", "error", err.Error())
		return
	}
	if existing != nil {
		c.reply(s, m.Message, "I saw that, Edited Strands Score Ignored.")
		return
	}
	c.addScore(ctx, s, m.Message)
	c.reply(s, m.Message, "I got you, Edited Strands Score Counted.")
}

func (c *Client) reply(s *discordgo.Session, m *discordgo.Message, text string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, text, m.Reference()); err != nil {
		c.logger.Error("unable to reply", "error", err.Error())
		return
	}
	metrics.DiscordMessageSent.Add(1)
}

// addScore records the result in a message, reacts with the score,
// attaches the day's solution if it is still missing, and fires the
// end-of-day summary or nag when the message changes the day's state.
// Enrichment only runs after the score write has settled.
func (c *Client) addScore(ctx context.Context, s *discordgo.Session, m *discordgo.Message) {
	traceID := uuid.New()
	result, err := strands.Parse(m.Content)
	if err != nil {
		c.logger.Error("recognized message failed to parse", "error", err.Error(), "traceID", traceID)
		return
	}
	block, _ := strands.Recognize(m.Content)

	if err := c.db.EnsureGame(ctx, result.PuzzleNumber, m.Timestamp); err != nil {
		c.logger.Error("unable to ensure game row", "game", result.PuzzleNumber, "error", err.Error(), "traceID", traceID)
	}

	newPlay := true
	existing, err := c.db.GetScore(ctx, m.Author.Username, result.PuzzleNumber, m.GuildID, m.ChannelID)
	if err != nil {
		c.logger.Error("unable to look up score", "error", err.Error(), "traceID", traceID)
		return
	}
	if existing != nil {
		newPlay = false
		metrics.DuplicateScores.Add(1)
	} else {
		entry := database.ScoreEntry{
			StrandsGame: result.PuzzleNumber,
			Username:    m.Author.Username,
			UserTag:     m.Author.String(),
			UserID:      m.Author.ID,
			Message:     block,
			Score:       result.Score,
			GuildID:     m.GuildID,
			ChannelID:   m.ChannelID,
			PostedAt:    m.Timestamp,
		}
		if err := c.db.RecordScore(ctx, entry); err != nil {
			c.logger.Error("unable to record score", "error", err.Error(), "traceID", traceID)
			return
		}
		metrics.ScoresRecorded.Add(1)
		c.logger.Info("score recorded",
			"username", m.Author.Username,
			"game", result.PuzzleNumber,
			"score", result.Score,
			"traceID", traceID)
	}

	// react with whatever score is actually on record
	score := result.Score
	if stored, err := c.db.GetScore(ctx, m.Author.Username, result.PuzzleNumber, m.GuildID, m.ChannelID); err == nil && stored != nil {
		score = stored.Score
	}
	for _, emoji := range strands.ScoreReactions(score) {
		if err := s.MessageReactionAdd(m.ChannelID, m.ID, emoji); err != nil {
			c.logger.Error("unable to react to message", "error", err.Error(), "traceID", traceID)
			break
		}
	}

	latest, err := c.db.LatestGameNumber(ctx)
	if err != nil {
		c.logger.Error("unable to look up latest game", "error", err.Error(), "traceID", traceID)
		return
	}
	c.attachSolutionIfMissing(ctx, latest)

	if result.PuzzleNumber != latest || !newPlay || m.Author.Username == c.cfg.BotName {
		return
	}
	c.maybeAutoPost(ctx, s, m.ChannelID, m.GuildID, latest)
}

// maybeAutoPost posts the summary when everyone known in the channel has
// finished the latest puzzle, or nags the configured straggler when they
// are the only one left.
func (c *Client) maybeAutoPost(ctx context.Context, s *discordgo.Session, channelID, guildID string, latest int) {
	total, err := c.db.TotalPlayers(ctx, guildID, channelID)
	if err != nil {
		c.logger.Error("unable to look up players", "error", err.Error())
		return
	}
	played, err := c.db.PlayersForGame(ctx, latest, guildID, channelID)
	if err != nil {
		c.logger.Error("unable to look up plays", "error", err.Error())
		return
	}
	remaining := strands.Remaining(total, played)
	c.logger.Info("players remaining", "game", latest, "remaining", len(remaining))

	switch strands.Decide(remaining, c.cfg.InsultUserName) {
	case strands.ActionPostSummary:
		if err := c.summary.Execute(ctx, s, nil, channelID); err != nil {
			c.logger.Error("unable to auto post summary", "error", err.Error())
		}
	case strands.ActionNagTarget:
		if err := c.wholeft.Execute(ctx, s, nil, channelID); err != nil {
			c.logger.Error("unable to auto post who left", "error", err.Error())
		}
	}
}

// attachSolutionIfMissing is best effort. The puzzle metadata feeds the
// summary gif and never blocks score handling.
func (c *Client) attachSolutionIfMissing(ctx context.Context, latest int) {
	if c.nyt == nil || latest == 0 {
		return
	}
	game, err := c.db.GetGame(ctx, latest)
	if err != nil {
		c.logger.Error("unable to load game", "game", latest, "error", err.Error())
		return
	}
	if game == nil || game.HasSolution() {
		return
	}
	solution, err := c.nyt.Solution(ctx, time.Now())
	if err != nil {
		metrics.SolutionLookupFailures.Add(1)
		c.logger.Error("unable to fetch solution", "game", latest, "error", err.Error())
		return
	}
	err = c.db.AttachSolution(ctx, latest, database.Solution{
		Spangram:   solution.Spangram,
		Clue:       solution.Clue,
		ThemeWords: solution.ThemeWords,
	})
	if err != nil {
		c.logger.Error("unable to attach solution", "game", latest, "error", err.Error())
	}
}
