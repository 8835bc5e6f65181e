package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/vaulty/card-analyzer/internal/llm"
	"github.com/vaulty/card-analyzer/internal/storage"
)

// BotAPI defines the interface for Telegram bot API operations.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Bot handles Telegram updates. It keeps no per-user state: every photo
// is a complete analysis request and every text message is answered on
// the spot, so updates from different chats can be processed
// concurrently.
type Bot struct {
	tg         BotAPI
	analyzer   llm.Analyzer
	store      storage.Store
	downloader *ImageDownloader
	limiter    *rate.Limiter
	adminID    int64
}

// NewBot creates a new Bot instance. store may be nil, which disables
// usage accounting and /stats.
func NewBot(tg BotAPI, analyzer llm.Analyzer, store storage.Store, adminID int64) *Bot {
	return &Bot{
		tg:         tg,
		analyzer:   analyzer,
		store:      store,
		downloader: NewImageDownloader(),
		// Telegram allows ~30 messages per second bot-wide. Stay under
		// it so burst replies (analysis + promo) never trip the API.
		limiter: rate.NewLimiter(rate.Limit(20), 5),
		adminID: adminID,
	}
}

// HandleUpdate processes a single Telegram update to completion. The
// caller decides the concurrency model; one goroutine per update is
// fine.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.From == nil {
		return
	}

	log.Info().
		Int64("user_id", message.From.ID).
		Str("text", message.Text).
		Bool("has_photo", len(message.Photo) > 0).
		Msg("got message")

	switch {
	case len(message.Photo) > 0:
		b.handlePhoto(ctx, message)
	case strings.HasPrefix(message.Text, "/"):
		b.handleCommand(ctx, message)
	case message.Text != "":
		b.handleText(ctx, message)
	}
}

// send pushes one message through the outbound rate limiter.
func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return tgbotapi.Message{}, err
	}
	sent, err := b.tg.Send(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to send message")
	}
	return sent, err
}

// reply sends a Markdown message to the chat. args, when present, are
// interpolated with Sprintf; messages without args go out verbatim so
// literal percent signs in the French texts stay intact.
func (b *Bot) reply(ctx context.Context, chatID int64, text string, args ...any) (tgbotapi.Message, error) {
	if len(args) > 0 {
		text = formatReplyText(text, args...)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return b.send(ctx, msg)
}

// replyWithKeyboard sends a Markdown message with an inline keyboard
// attached.
func (b *Bot) replyWithKeyboard(ctx context.Context, chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard
	return b.send(ctx, msg)
}

// deleteMessage removes a previously sent message, typically the
// "analyzing" placeholder. Failures are logged and swallowed: a stale
// placeholder is cosmetic.
func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := b.tg.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		log.Warn().Err(err).Int("message_id", messageID).Msg("failed to delete message")
	}
}

// editMessage replaces the text of a sent message in place.
func (b *Bot) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.tg.Send(edit); err != nil {
		log.Warn().Err(err).Int("message_id", messageID).Msg("failed to edit message")
	}
}

// sendTyping sends a "typing" chat action, which Telegram expires on its
// own after about five seconds. Request rather than Send because
// sendChatAction answers with a boolean, not a Message.
func (b *Bot) sendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := b.tg.Request(action); err != nil {
		log.Debug().Err(err).Int64("chat_id", chatID).Msg("failed to send typing action")
	}
}

// typingLoop keeps the typing indicator alive until ctx is cancelled.
// Run it in a goroutine around work that outlives one action, like a
// vision call.
func (b *Bot) typingLoop(ctx context.Context, chatID int64) {
	b.sendTyping(chatID)

	ticker := time.NewTicker(4 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.sendTyping(chatID)
		}
	}
}

// recordUsage writes one ledger row for a billed analysis. Cache hits
// carry zero usage and are skipped.
func (b *Bot) recordUsage(telegramID int64, usage llm.Usage) {
	if b.store == nil || usage.TotalTokens == 0 {
		return
	}
	err := b.store.RecordUsage(&storage.UsageRecord{
		TelegramID:   telegramID,
		Model:        usage.Model,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		CostUSD:      usage.CostUSD,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to record usage")
	}
}

// statsWindow is the recent-activity window shown by /stats.
const statsWindow = 24 * time.Hour
