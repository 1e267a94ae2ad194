// Package discord wires the bot to the chat platform: the session, the
// slash commands, the message handlers that detect and record scores,
// and the daily summary scheduler.
package discord

import (
	"net/http"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/puzzlehut/strands-bot/ai"
	"github.com/puzzlehut/strands-bot/config"
	"github.com/puzzlehut/strands-bot/database"
	"github.com/puzzlehut/strands-bot/images"
	"github.com/puzzlehut/strands-bot/logging"
	"github.com/puzzlehut/strands-bot/nyt"
)

// Store is the persistence surface the bot needs.
type Store interface {
	database.ScoreStore
	database.GameStore
}

// Client owns the discord session and the command implementations.
type Client struct {
	Session *discordgo.Session
	db      Store
	cfg     *config.Config
	nyt     *nyt.Client
	summary *SummaryCommand
	wholeft *WhoLeftCommand
	monthly *MonthlyCommand
	logger  *logging.Logger
}

// Setup creates the discord session, opens the websocket connection,
// registers the slash commands, and attaches the event handlers. The
// insulter, image searcher, and nyt client may each be nil, which
// disables that enrichment.
func Setup(cfg *config.Config, db Store, insulter ai.Insulter, imageSearch images.Searcher, nytClient *nyt.Client, logger *logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.Default()
	}

	authToken := os.Getenv("DISCORD_SECRET")
	session, err := discordgo.New("Bot " + authToken)
	if err != nil {
		return nil, errors.Wrap(err, "error creating discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	c := &Client{
		Session: session,
		db:      db,
		cfg:     cfg,
		nyt:     nytClient,
		logger:  logger,
		summary: &SummaryCommand{
			db:     db,
			images: imageSearch,
			cfg:    cfg,
			logger: logger.Named("summary"),
			httpClient: &http.Client{
				Timeout: 30 * time.Second,
			},
		},
		wholeft: &WhoLeftCommand{
			db:       db,
			insulter: insulter,
			cfg:      cfg,
			logger:   logger.Named("wholeft"),
		},
		monthly: &MonthlyCommand{
			db:     db,
			cfg:    cfg,
			logger: logger.Named("monthly"),
		},
	}

	// opens websocket connection
	err = session.Open()
	if err != nil {
		return nil, errors.Wrap(err, "error opening connection to discord")
	}

	for _, v := range AddCommands() {
		_, err := session.ApplicationCommandCreate(session.State.User.ID, "", v)
		if err != nil {
			return nil, errors.Wrap(err, "error creating command")
		}
	}

	commandHandlers := c.MakeCommandHandlers()
	// after the commands are registered we can add the handlers
	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if h, ok := commandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
	session.AddHandler(c.handleMessageCreate)
	session.AddHandler(c.handleMessageUpdate)

	logger.Info("discord connection established", "user", session.State.User.Username)
	return c, nil
}

// Close shuts down the websocket connection.
func (c *Client) Close() error {
	return c.Session.Close()
}
