package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/puzzlehut/strands-bot/ai"
	"github.com/puzzlehut/strands-bot/config"
	"github.com/puzzlehut/strands-bot/database"
	"github.com/puzzlehut/strands-bot/discord"
	"github.com/puzzlehut/strands-bot/images"
	"github.com/puzzlehut/strands-bot/logging"
	"github.com/puzzlehut/strands-bot/metrics"
	"github.com/puzzlehut/strands-bot/nyt"
)

func main() {
	var configPath string
	var reprocess bool
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the yaml config file")
	flag.BoolVar(&reprocess, "reprocess", false, "Recompute all stored scores from their saved messages, then exit")
	flag.Parse()

	// .env is optional, real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	logger := logging.NewLogger(logging.LogLevel(cfg.LogLevel), os.Stdout)

	server := metrics.SetupServer(cfg.MetricsAddr)
	go server.Run()

	db, err := database.NewPostgres(cfg.BotName, logger.Named("database"))
	if err != nil {
		log.Fatalln(err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if reprocess {
		if err := db.ReprocessScores(ctx); err != nil {
			log.Fatalln(err)
		}
		logger.Info("reprocess complete")
		return
	}

	var insulter ai.Insulter
	if cfg.Ollama.GenerateMessages {
		ollama, err := ai.NewOllamaInsulter(cfg.Ollama, db, cfg.InsultMention(), logger.Named("ai"))
		if err != nil {
			log.Fatalln(err)
		}
		insulter = ollama
	}

	var searcher images.Searcher
	switch {
	case cfg.TenorAPIKey != "":
		searcher = images.NewTenor(cfg.TenorAPIKey)
	case cfg.GiphyAPIKey != "":
		searcher = images.NewGiphy(cfg.GiphyAPIKey)
	}

	session, err := discord.Setup(cfg, db, insulter, searcher, nyt.NewClient(), logger.Named("discord"))
	if err != nil {
		log.Fatalln(err)
	}

	if cfg.AutoPostSummaryChannel != "" {
		go session.RunDailySummary(ctx, cfg.AutoPostHour, cfg.AutoPostMin, cfg.AutoPostSummaryChannel)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	log.Println("Press Ctrl+C to exit")
	<-stop

	cancel()
	if err := session.Close(); err != nil {
		logger.Error("error closing discord session", "error", err.Error())
	}
	logger.Info("shutting down")
}
