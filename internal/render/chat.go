package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vaulty/card-analyzer/internal/card"
)

// chatMessageLimit is the per-message budget for chat renders. Telegram
// caps messages at 4096 characters; staying under leaves headroom for
// the transport.
const chatMessageLimit = 4000

const chatFooter = "---\n" +
	"🔐 *Analyse propulsée par Vaulty Protocol*\n" +
	"🇨🇭 *Authentification Blockchain Suisse*\n" +
	"🌐 *vaultyprotocol.tech*"

// EscapeMarkdown escapes the characters Telegram's legacy Markdown
// parser treats as markup.
func EscapeMarkdown(text string) string {
	text = strings.ReplaceAll(text, "*", "\\*")
	text = strings.ReplaceAll(text, "_", "\\_")
	text = strings.ReplaceAll(text, "`", "\\`")
	text = strings.ReplaceAll(text, "[", "\\[")
	return text
}

// Chat renders the condensed French chat reply in Telegram's legacy
// Markdown. Sections with nothing recognized are skipped rather than
// padded with unknown markers. The result always fits the message
// budget: the description, or the raw model text when nothing
// structured was extracted, is trimmed first; recognized fields and the
// footer are never cut.
func Chat(a *card.Analysis) string {
	sections := chatSections(a)

	base := utf8.RuneCountInString(chatFooter)
	for _, s := range sections {
		base += utf8.RuneCountInString(s) + 2
	}
	room := chatMessageLimit - base - 2

	var variable string
	if a.Description != nil {
		if inner := fitRunes(EscapeMarkdown(strings.TrimSpace(*a.Description)), room-2); inner != "" {
			variable = "_" + inner + "_"
		}
	} else if len(sections) == 0 {
		variable = fitRunes(EscapeMarkdown(strings.TrimSpace(a.RawText)), room)
	}

	parts := sections
	if variable != "" {
		parts = append(parts, variable)
	}
	parts = append(parts, chatFooter)
	return strings.Join(parts, "\n\n")
}

func chatSections(a *card.Analysis) []string {
	var sections []string
	for _, s := range []string{
		chatIdentity(a.Identity),
		chatCondition(a.Condition),
		chatValuation(a.Valuation),
		chatTrend(a.Valuation),
		chatConfidence(a.Confidence),
	} {
		if s != "" {
			sections = append(sections, s)
		}
	}
	return sections
}

func chatIdentity(id card.Identity) string {
	var lines []string
	add := func(label string, v *string) {
		if v != nil {
			lines = append(lines, "• "+label+": "+EscapeMarkdown(*v))
		}
	}
	add("Carte", id.Player)
	add("Catégorie", id.Category)
	add("Équipe", id.Team)
	if id.Year != nil {
		lines = append(lines, "• Année: "+strconv.Itoa(*id.Year))
	}
	add("Marque", id.Manufacturer)
	add("Set", id.SetName)
	add("Numéro", id.CardNumber)
	add("Type", id.Parallel)
	add("Série", id.SerialNumber)
	if id.Rookie != nil && *id.Rookie {
		lines = append(lines, "• Rookie Card: Oui")
	}
	if id.Autograph != nil && *id.Autograph {
		lines = append(lines, "• Autographe: Oui")
	}
	add("Memorabilia", id.Memorabilia)
	if len(lines) == 0 {
		return ""
	}
	return "🎴 *IDENTIFICATION*\n" + strings.Join(lines, "\n")
}

func chatCondition(c card.Condition) string {
	empty := c.Grade == nil && c.Centering == nil && c.Corners == nil &&
		c.Edges == nil && c.Surface == nil && len(c.Flaws) == 0
	if empty {
		return ""
	}
	lines := []string{"• Note globale: " + EscapeMarkdown(gradeLabel(c.Grade))}
	add := func(label string, v *string) {
		if v != nil {
			lines = append(lines, "• "+label+": "+EscapeMarkdown(*v))
		}
	}
	add("Centrage", c.Centering)
	add("Coins", c.Corners)
	add("Surface", c.Surface)
	add("Bordures", c.Edges)
	if len(c.Flaws) > 0 {
		lines = append(lines, "• Défauts: "+EscapeMarkdown(strings.Join(c.Flaws, ", ")))
	}
	return "📊 *ÉTAT ESTIMÉ*\n" + strings.Join(lines, "\n")
}

func chatValuation(v card.Valuation) string {
	var lines []string
	if v.RawLow != nil || v.RawHigh != nil {
		lines = append(lines, "📦 RAW (non gradée): "+priceRange(v.RawLow, v.RawHigh))
	} else if v.RawMid != nil {
		lines = append(lines, "📦 RAW (non gradée): "+priceOrUnknown(v.RawMid))
	}
	for _, g := range sortedGrades(v) {
		lines = append(lines, fmt.Sprintf("%s PSA %d: %s", gradeMedal(g), g, gradedPrice(v, g)))
	}
	if len(lines) == 0 {
		return ""
	}
	return "💰 *ESTIMATION DE PRIX*\n" + strings.Join(lines, "\n")
}

// gradeMedal picks the bullet for a graded price line. Podium emoji for
// the usual top grades, a plain bullet below that.
func gradeMedal(grade int) string {
	switch grade {
	case 10:
		return "🥇"
	case 9:
		return "🥈"
	case 8:
		return "🥉"
	default:
		return "•"
	}
}

func chatTrend(v card.Valuation) string {
	if v.Trend == nil && v.Notes == nil {
		return ""
	}
	var lines []string
	if v.Trend != nil {
		lines = append(lines, "📈 *TENDANCE DU MARCHÉ*: "+trendIcon(*v.Trend)+" "+trendFrench(*v.Trend))
	}
	if v.Notes != nil {
		lines = append(lines, "_"+EscapeMarkdown(*v.Notes)+"_")
	}
	return strings.Join(lines, "\n")
}

func chatConfidence(c card.Confidence) string {
	if c.Identification == nil && c.Value == nil {
		return ""
	}
	var parts []string
	if c.Identification != nil {
		parts = append(parts, "identification "+confidenceFrench(*c.Identification))
	}
	if c.Value != nil {
		parts = append(parts, "valeur "+confidenceFrench(*c.Value))
	}
	return "⚠️ *Niveau de confiance*: " + strings.Join(parts, ", ")
}

func trendFrench(trend string) string {
	switch {
	case strings.EqualFold(trend, "Rising"):
		return "Hausse"
	case strings.EqualFold(trend, "Declining"):
		return "Baisse"
	case strings.EqualFold(trend, "Stable"):
		return "Stable"
	}
	return EscapeMarkdown(trend)
}

func confidenceFrench(level string) string {
	switch {
	case strings.EqualFold(level, "High"):
		return "élevée"
	case strings.EqualFold(level, "Medium"):
		return "moyenne"
	case strings.EqualFold(level, "Low"):
		return "faible"
	}
	return EscapeMarkdown(level)
}

// fitRunes trims s to at most room runes, appending an ellipsis when it
// had to cut. Returns "" when there is no room at all.
func fitRunes(s string, room int) string {
	if room <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= room {
		return s
	}
	if room == 1 {
		return "…"
	}
	return string(runes[:room-1]) + "…"
}

// SplitMessage cuts text into chunks the chat transport accepts,
// preferring to break at a newline close to the limit so Markdown
// markup, which is line scoped here, stays balanced.
func SplitMessage(text string) []string {
	runes := []rune(text)
	if len(runes) <= chatMessageLimit {
		return []string{text}
	}

	var parts []string
	for len(runes) > chatMessageLimit {
		cut := chatMessageLimit
		for i := chatMessageLimit; i > chatMessageLimit-400 && i > 0; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		if part := strings.TrimRight(string(runes[:cut]), "\n"); part != "" {
			parts = append(parts, part)
		}
		runes = runes[cut:]
	}
	if part := string(runes); strings.TrimSpace(part) != "" {
		parts = append(parts, part)
	}
	return parts
}
