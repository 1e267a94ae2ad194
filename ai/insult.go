// Package ai generates the absentee insult. Generation runs against a
// local ollama model and keeps conversational memory in the database so
// the insults stay varied; when generation is disabled or fails, callers
// fall back to a fixed template set.
package ai

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/puzzlehut/strands-bot/config"
	"github.com/puzzlehut/strands-bot/database"
	"github.com/puzzlehut/strands-bot/logging"
	"github.com/puzzlehut/strands-bot/metrics"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// ConversationName keys the stored insult conversation history.
const ConversationName = "strandsInsults"

// generation on small hardware can take a very long time; this is a
// ceiling, not an expectation
const generateTimeout = 24 * time.Hour

// Insulter generates flavor text for the designated absentee.
type Insulter interface {
	Insult(ctx context.Context, gameNumber int) (string, error)
}

// OllamaInsulter is the ollama-backed Insulter.
type OllamaInsulter struct {
	llm     llms.Model
	store   database.ConversationStore
	mention string
	logger  *logging.Logger
}

// NewOllamaInsulter connects to the configured ollama server. mention is
// the discord mention substituted for name placeholders in generated
// text.
func NewOllamaInsulter(cfg config.OllamaConfig, store database.ConversationStore, mention string, logger *logging.Logger) (*OllamaInsulter, error) {
	if logger == nil {
		logger = logging.Default()
	}

	llm, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL()),
		ollama.WithModel(cfg.InsultModelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaInsulter{
		llm:     llm,
		store:   store,
		mention: mention,
		logger:  logger,
	}, nil
}

// Insult asks the model for a fresh insult referencing the puzzle number.
// On success the appended conversation history is persisted wholesale for
// continuity; history load and save failures are logged but do not fail
// the generation.
func (o *OllamaInsulter) Insult(ctx context.Context, gameNumber int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	history, err := o.store.GetMessages(ctx, ConversationName)
	if err != nil {
		o.logger.Error("error loading insult conversation history", "error", err.Error())
		history = nil
	}

	prompt := fmt.Sprintf("Generate an insult for Strands Game %d", gameNumber)
	history = append(history, database.ChatMessage{Role: "user", Content: prompt})

	content := make([]llms.MessageContent, 0, len(history))
	for _, message := range history {
		content = append(content, llms.TextParts(chatMessageType(message.Role), message.Content))
	}

	start := time.Now()
	resp, err := o.llm.GenerateContent(ctx, content, llms.WithCandidateCount(1))
	if err != nil {
		metrics.FailedLLMGenCount.Add(1)
		return "", fmt.Errorf("failed to generate insult: %w", err)
	}
	o.logger.Info("insult generated", "game", gameNumber, "duration", time.Since(start).String())

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		metrics.EmptyLLMResponseCount.Add(1)
		return "", fmt.Errorf("empty insult response from llm")
	}
	text := resp.Choices[0].Content

	history = append(history, database.ChatMessage{Role: "assistant", Content: text})
	if err := o.store.SaveMessages(ctx, ConversationName, history); err != nil {
		o.logger.Error("error saving insult conversation history", "error", err.Error())
	}

	metrics.SuccessfulLLMGenCount.Add(1)
	return substituteTarget(text, o.mention), nil
}

// chatMessageType maps stored roles to langchaingo message types.
func chatMessageType(role string) llms.ChatMessageType {
	switch role {
	case "assistant", "ai":
		return llms.ChatMessageTypeAI
	case "system":
		return llms.ChatMessageTypeSystem
	default:
		return llms.ChatMessageTypeHuman
	}
}

// substituteTarget replaces the name placeholders models like to emit
// with the real target mention.
func substituteTarget(text, mention string) string {
	for _, placeholder := range []string{"[name]", "[Name]", "[Player]"} {
		text = strings.ReplaceAll(text, placeholder, mention)
	}
	return text
}

var fallbackTemplates = [5]string{
	"Is too lazy to complete Strands %d",
	"Is holding everyone else back on Strands %d, he's the worst",
	"Is the worst. Complete Strands %d already!",
	"Has time to edit discord names but not complete Strands %d",
	"As per usual has not completed Strands %d",
}

// Fallback returns one of the fixed insult templates, chosen
// pseudorandomly, referencing the puzzle number.
func Fallback(gameNumber int) string {
	metrics.InsultFallbacksUsedCount.Add(1)
	return fmt.Sprintf(fallbackTemplates[rand.Intn(len(fallbackTemplates))], gameNumber)
}
