package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/vaulty/card-analyzer/internal/render"
)

// Command defines a bot command with its handler key and Telegram menu description.
type Command struct {
	Name        string // Command name without slash (e.g., "start")
	Description string // Description shown in Telegram command menu
}

// botCommands defines all available bot commands.
// This is the single source of truth for the Telegram command menu;
// aliases (/aide, /tarifs, /verify) work but stay out of the menu.
var botCommands = []Command{
	{Name: "start", Description: "Message de bienvenue"},
	{Name: "help", Description: "Aide et conseils photo"},
	{Name: "services", Description: "Nos services de certification"},
	{Name: "prix", Description: "Tarifs Vaulty Protocol"},
	{Name: "verifier", Description: "Vérifier une carte certifiée"},
	{Name: "contact", Description: "Nous contacter"},
}

// RegisterCommands sets the bot's command menu in Telegram.
// This should be called once at startup.
func RegisterCommands(tg BotAPI) {
	commands := make([]tgbotapi.BotCommand, len(botCommands))
	for i, cmd := range botCommands {
		commands[i] = tgbotapi.BotCommand{
			Command:     cmd.Name,
			Description: cmd.Description,
		}
	}

	config := tgbotapi.NewSetMyCommands(commands...)
	if _, err := tg.Request(config); err != nil {
		log.Error().Err(err).Msg("failed to set bot commands")
	} else {
		log.Info().Int("count", len(commands)).Msg("registered bot commands")
	}
}

// handleCommand routes slash commands.
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	command, _ := parseCommand(message.Text)

	switch command {
	case "/start":
		b.replyWithKeyboard(ctx, chatID, MsgWelcome, welcomeKeyboard())
	case "/help", "/aide":
		b.replyWithKeyboard(ctx, chatID, MsgHelp, siteKeyboard())
	case "/services":
		b.replyWithKeyboard(ctx, chatID, MsgServices, servicesKeyboard())
	case "/prix", "/tarifs":
		b.replyWithKeyboard(ctx, chatID, MsgPrices, pricesKeyboard())
	case "/verifier", "/verify":
		b.replyWithKeyboard(ctx, chatID, MsgVerify, verifyKeyboard())
	case "/contact":
		b.replyWithKeyboard(ctx, chatID, MsgContact, contactKeyboard())
	case "/version":
		b.reply(ctx, chatID, MsgVersionInfo, render.Version)
	case "/stats":
		b.handleStatsCommand(ctx, message)
	default:
		b.replyWithKeyboard(ctx, chatID, MsgFallbackReply, siteKeyboard())
	}
}

// handleStatsCommand reports usage totals to the admin. Non-admin users
// get the regular fallback so the command stays invisible.
func (b *Bot) handleStatsCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if message.From.ID != b.adminID {
		b.replyWithKeyboard(ctx, chatID, MsgFallbackReply, siteKeyboard())
		return
	}
	if b.store == nil {
		b.reply(ctx, chatID, MsgStatsUnavailable, "pas de base de données")
		return
	}

	recent, err := b.store.UsageSummary(time.Now().Add(-statsWindow))
	if err != nil {
		b.reply(ctx, chatID, MsgStatsUnavailable, err.Error())
		return
	}
	allTime, err := b.store.UsageSummary(time.Time{})
	if err != nil {
		b.reply(ctx, chatID, MsgStatsUnavailable, err.Error())
		return
	}
	cached, err := b.store.AnalysisCacheCount()
	if err != nil {
		b.reply(ctx, chatID, MsgStatsUnavailable, err.Error())
		return
	}

	b.reply(ctx, chatID, MsgStatsFmt,
		recent.Analyses, recent.InputTokens, recent.OutputTokens, recent.CostUSD,
		allTime.Analyses, allTime.InputTokens, allTime.OutputTokens, allTime.CostUSD,
		cached)
}
