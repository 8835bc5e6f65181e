package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Vaulty Protocol link targets used across the inline keyboards.
const (
	urlSite        = "https://vaultyprotocol.tech"
	urlMarketplace = "https://vaultyprotocol.tech/marketplace/"
	urlServices    = "https://vaultyprotocol.tech/pass-services/"
	urlVerify      = "https://vaultyprotocol.tech/vaultyprotocol-tech-verify/"
	urlContactPage = "https://vaultyprotocol.tech/contact/"
	urlInstagram   = "https://instagram.com/vaulty_protocol"
	urlTwitter     = "https://x.com/vaulty_protocol"
)

func welcomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🌐 Découvrir Vaulty", urlSite),
			tgbotapi.NewInlineKeyboardButtonURL("🛒 Marketplace", urlMarketplace),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔐 Nos Services", urlServices),
			tgbotapi.NewInlineKeyboardButtonURL("✅ Vérifier une Carte", urlVerify),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📱 Instagram", urlInstagram),
			tgbotapi.NewInlineKeyboardButtonURL("🐦 Twitter/X", urlTwitter),
		),
	)
}

func siteKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🌐 Visiter notre site", urlSite),
		),
	)
}

func servicesKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔐 Commander une Certification", urlServices),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🛒 Voir le Marketplace", urlMarketplace),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📞 Nous Contacter", urlContactPage),
		),
	)
}

func pricesKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔐 Commander Maintenant", urlServices),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💬 Demander un Devis", urlContactPage),
		),
	)
}

func verifyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("✅ Vérifier une Carte", urlVerify),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("⚠️ Signaler un Problème", urlContactPage),
		),
	)
}

func contactKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🌐 Site Web", urlSite),
			tgbotapi.NewInlineKeyboardButtonURL("📧 Email", "mailto:contact@vaultyprotocol.tech"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🐦 Twitter", urlTwitter),
			tgbotapi.NewInlineKeyboardButtonURL("📱 Instagram", urlInstagram),
		),
	)
}

func promoKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔐 Certifier cette carte", urlServices),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💰 Voir les tarifs", urlServices),
			tgbotapi.NewInlineKeyboardButtonURL("🛒 Marketplace", urlMarketplace),
		),
	)
}
