package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vaulty/card-analyzer/internal/card"
)

// Vaulty Protocol brand palette.
var (
	colorCyan    = lipgloss.Color("#00D4FF")
	colorMagenta = lipgloss.Color("#FF00FF")
	colorAccent  = lipgloss.Color("#00FFB3")
)

const (
	panelWidth = 56
	labelWidth = 20
)

var (
	bannerCyan    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	bannerMagenta = lipgloss.NewStyle().Bold(true).Foreground(colorMagenta)

	labelCyan    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	labelMagenta = lipgloss.NewStyle().Bold(true).Foreground(colorMagenta)
	titleAccent  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	boldValue    = lipgloss.NewStyle().Bold(true)
	dimValue     = lipgloss.NewStyle().Faint(true)
	italicValue  = lipgloss.NewStyle().Italic(true)

	cyanPanel = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorCyan).
			Padding(0, 2).
			Width(panelWidth)
	magentaPanel = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorMagenta).
			Padding(0, 2).
			Width(panelWidth)
	accentPanel = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(0, 2).
			Width(panelWidth)
	roundedPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMagenta).
			Padding(0, 2).
			Width(panelWidth)

	footerStyle = lipgloss.NewStyle().Faint(true).Foreground(colorCyan)
)

// Terminal renders the full branded report. Output depends only on the
// analysis: the same input renders byte for byte the same.
func Terminal(a *card.Analysis) string {
	sections := []string{
		banner(),
		identificationPanel(a),
		conditionPanel(a),
		marketPanel(a),
		summaryPanel(a),
		footerStyle.Render("━━━ Powered by Vaulty Protocol × Claude Vision ━━━"),
	}
	return strings.Join(sections, "\n") + "\n"
}

func banner() string {
	art := []string{
		"██╗   ██╗ █████╗ ██╗   ██╗██╗  ████████╗██╗   ██╗",
		"██║   ██║██╔══██╗██║   ██║██║  ╚══██╔══╝╚██╗ ██╔╝",
		"██║   ██║███████║██║   ██║██║     ██║    ╚████╔╝ ",
		"╚██╗ ██╔╝██╔══██║██║   ██║██║     ██║     ╚██╔╝  ",
		" ╚████╔╝ ██║  ██║╚██████╔╝███████╗██║      ██║   ",
		"  ╚═══╝  ╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝      ╚═╝   ",
	}
	styles := []lipgloss.Style{
		bannerCyan, bannerCyan, bannerMagenta, bannerMagenta, bannerCyan, bannerCyan,
	}

	var b strings.Builder
	for i, line := range art {
		b.WriteString(styles[i].Render(line))
		b.WriteByte('\n')
	}
	b.WriteString(dimValue.Foreground(colorMagenta).Render("━━━━━━━━━━━ CARD ANALYZER ━━━━━━━━━━━"))
	return b.String()
}

// row lays out one "Label   value" line. The label is padded before
// styling so ANSI sequences never skew the columns.
func row(labelStyle lipgloss.Style, label, value string) string {
	if w := lipgloss.Width(label); w < labelWidth {
		label += strings.Repeat(" ", labelWidth-w)
	} else {
		label += " "
	}
	return labelStyle.Render(label) + value
}

func panel(style lipgloss.Style, title string, titleStyle lipgloss.Style, rows []string) string {
	lines := append([]string{titleStyle.Render(title), ""}, rows...)
	return style.Render(strings.Join(lines, "\n"))
}

func identificationPanel(a *card.Analysis) string {
	id := a.Identity
	rows := []string{
		row(labelCyan, "Category", orUnknown(id.Category)),
		row(labelCyan, "Player/Character", orUnknown(id.Player)),
		row(labelCyan, "Team", orUnknown(id.Team)),
		row(labelCyan, "Year", intOrUnknown(id.Year)),
		row(labelCyan, "Manufacturer", orUnknown(id.Manufacturer)),
		row(labelCyan, "Set", orUnknown(id.SetName)),
		row(labelCyan, "Card #", orUnknown(id.CardNumber)),
		row(labelCyan, "Parallel/Subset", orUnknown(id.Parallel)),
		row(labelCyan, "Serial #", orUnknown(id.SerialNumber)),
		row(labelCyan, "Rookie Card", yesNo(id.Rookie)),
		row(labelCyan, "Autograph", yesNo(id.Autograph)),
		row(labelCyan, "Memorabilia", orUnknown(id.Memorabilia)),
	}
	return panel(cyanPanel, "CARD IDENTIFICATION", labelCyan, rows)
}

func conditionPanel(a *card.Analysis) string {
	cond := a.Condition

	grade := unknownMarker
	if cond.Grade != nil {
		grade = gradeLabel(cond.Grade)
	}
	flaws := "None noted"
	if len(cond.Flaws) > 0 {
		flaws = strings.Join(cond.Flaws, ", ")
	}

	rows := []string{
		row(labelMagenta, "Est. Grade", boldValue.Render(grade)),
		row(labelMagenta, "Centering", ratingDots(cond.Centering)),
		row(labelMagenta, "Corners", ratingDots(cond.Corners)),
		row(labelMagenta, "Edges", ratingDots(cond.Edges)),
		row(labelMagenta, "Surface", ratingDots(cond.Surface)),
		row(labelMagenta, "Flaws", dimValue.Render(flaws)),
	}
	return panel(magentaPanel, "CONDITION ASSESSMENT", labelMagenta, rows)
}

func marketPanel(a *card.Analysis) string {
	val := a.Valuation
	rows := []string{
		row(labelCyan, "RAW (Ungraded)", priceRange(val.RawLow, val.RawHigh)),
		row(labelCyan, "  └─ Mid Estimate", boldValue.Render(priceOrUnknown(val.RawMid))),
		"",
		row(labelCyan, "PSA 10 (Gem Mint)", titleAccent.Render(gradedPrice(val, 10))),
		row(labelCyan, "PSA 9 (Mint)", gradedPrice(val, 9)),
		row(labelCyan, "PSA 8 (NM-MT)", gradedPrice(val, 8)),
	}
	for _, g := range extraGrades(val) {
		rows = append(rows, row(labelCyan, fmt.Sprintf("PSA %d", g), gradedPrice(val, g)))
	}
	rows = append(rows,
		"",
		row(labelCyan, "Market Trend", trendDisplay(val.Trend)),
		row(labelCyan, "Notes", dimValue.Render(orUnknown(val.Notes))),
	)
	return panel(accentPanel, "MARKET VALUES (USD)", titleAccent, rows)
}

func trendDisplay(trend *string) string {
	if trend == nil {
		return unknownMarker
	}
	return trendIcon(*trend) + " " + *trend
}

func summaryPanel(a *card.Analysis) string {
	conf := a.Confidence
	confLine := labelMagenta.Render("ID Confidence: ") +
		strings.ToUpper(orUnknown(conf.Identification)) +
		labelMagenta.Render("  |  Value Confidence: ") +
		strings.ToUpper(orUnknown(conf.Value))

	rows := []string{
		confLine,
		"",
		italicValue.Render(orUnknown(a.Description)),
		"",
		dimValue.Render("Note: " + orUnknown(conf.Notes)),
	}
	return panel(roundedPanel, "ANALYSIS SUMMARY", labelMagenta, rows)
}
