package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/vaulty/card-analyzer/internal/card"
	"github.com/vaulty/card-analyzer/internal/llm"
	"github.com/vaulty/card-analyzer/internal/render"
)

// handlePhoto runs the full analysis flow for one photo message: post a
// waiting message, download the largest size Telegram offers, analyze,
// swap the waiting message for the result, then follow up with the
// certification promo.
func (b *Bot) handlePhoto(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	waiting, err := b.reply(ctx, chatID, MsgAnalyzing)
	if err != nil {
		return
	}

	typingCtx, stopTyping := context.WithCancel(ctx)
	defer stopTyping()
	go b.typingLoop(typingCtx, chatID)

	photo := largestPhoto(message.Photo)
	data, err := b.downloader.DownloadFromTelegramFileID(ctx, b.tg.GetFileDirectURL, photo.FileID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", message.From.ID).Msg("photo download failed")
		b.editMessage(chatID, waiting.MessageID, formatReplyText(MsgAnalysisFailed, ErrDetailDownload))
		return
	}

	payload, err := card.NewLoader().LoadBytes(data, "")
	if err != nil {
		log.Error().Err(err).Int64("user_id", message.From.ID).Msg("photo rejected")
		b.editMessage(chatID, waiting.MessageID, formatReplyText(MsgAnalysisFailed, ErrDetailDownload))
		return
	}

	result, err := b.analyzer.AnalyzeCard(ctx, payload)
	if err != nil {
		log.Error().Err(err).Int64("user_id", message.From.ID).Msg("analysis failed")
		b.editMessage(chatID, waiting.MessageID, formatReplyText(MsgAnalysisFailed, errDetail(err)))
		return
	}

	b.recordUsage(message.From.ID, result.Usage)

	b.deleteMessage(chatID, waiting.MessageID)
	for _, part := range render.SplitMessage(render.Chat(result.Analysis)) {
		if _, err := b.reply(ctx, chatID, part); err != nil {
			return
		}
	}

	b.replyWithKeyboard(ctx, chatID, MsgPromo, promoKeyboard())
}

// errDetail maps an analysis error onto the one-line French detail shown
// to the user.
func errDetail(err error) string {
	switch {
	case errors.Is(err, llm.ErrAuth):
		return ErrDetailAuth
	case errors.Is(err, llm.ErrRateLimited):
		return ErrDetailRateLimit
	case errors.Is(err, llm.ErrTimeout):
		return ErrDetailTimeout
	case errors.Is(err, llm.ErrEmptyResponse):
		return ErrDetailEmpty
	default:
		return ErrDetailGeneric
	}
}

// largestPhoto picks the biggest size variant of a Telegram photo.
// Telegram sorts variants ascending, but sort order is not documented,
// so compare explicitly.
func largestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	var best tgbotapi.PhotoSize
	for _, s := range sizes {
		if s.Width*s.Height >= best.Width*best.Height {
			best = s
		}
	}
	return best
}

// handleText answers free-form text with a canned French reply picked by
// keyword.
func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) {
	b.replyWithKeyboard(ctx, message.Chat.ID, textReply(message.Text), siteKeyboard())
}

// textReply buckets a message into one of the canned replies.
func textReply(text string) string {
	lower := strings.ToLower(text)
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("bonjour", "salut", "hello", "hi", "coucou", "hey"):
		return MsgGreetingReply
	case contains("merci", "thanks", "super", "génial", "cool", "parfait"):
		return MsgThanksReply
	case contains("prix", "tarif", "coût", "combien", "coute"):
		return MsgPriceReply
	case contains("faux", "fake", "contrefaçon", "arnaque", "scam"):
		return MsgFakeReply
	case contains("aide", "help", "comment", "quoi"):
		return MsgHelpReply
	default:
		return MsgFallbackReply
	}
}
