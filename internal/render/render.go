package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vaulty/card-analyzer/internal/card"
)

// Mode selects one of the output presenters.
type Mode int

const (
	// ModeTerminal is the branded multi-panel report for interactive use.
	ModeTerminal Mode = iota
	// ModeJSON is the machine-readable document mirroring the analysis
	// one to one.
	ModeJSON
	// ModeChat is the condensed French reply for the Telegram transport.
	ModeChat
)

// Render runs the presenter for mode. Presenters are pure: the same
// analysis always renders to the same output, and nothing here performs
// I/O.
func Render(mode Mode, a *card.Analysis) (string, error) {
	switch mode {
	case ModeTerminal:
		return Terminal(a), nil
	case ModeJSON:
		return JSON(a)
	case ModeChat:
		return Chat(a), nil
	default:
		return "", fmt.Errorf("unknown render mode: %d", mode)
	}
}

// Summary renders the two-line minimal output used by the CLI's quiet
// mode: identity on the first line, key values on the second.
func Summary(a *card.Analysis) string {
	year := "?"
	if a.Identity.Year != nil {
		year = strconv.Itoa(*a.Identity.Year)
	}
	number := "?"
	if a.Identity.CardNumber != nil {
		number = strings.TrimPrefix(*a.Identity.CardNumber, "#")
	}
	rawMid := 0.0
	if a.Valuation.RawMid != nil {
		rawMid = *a.Valuation.RawMid
	}
	psa10 := a.Valuation.PSAGraded[10]
	return fmt.Sprintf("%s - %s %s #%s\nRAW: $%s | PSA 10: $%s",
		orUnknown(a.Identity.Player), year, orUnknown(a.Identity.SetName), number,
		formatPrice(rawMid), formatPrice(psa10))
}

// unknownMarker stands in for absent values so report layouts stay
// stable.
const unknownMarker = "Unknown"

func orUnknown(v *string) string {
	if v == nil {
		return unknownMarker
	}
	return *v
}

func intOrUnknown(v *int) string {
	if v == nil {
		return unknownMarker
	}
	return strconv.Itoa(*v)
}

func yesNo(v *bool) string {
	switch {
	case v == nil:
		return unknownMarker
	case *v:
		return "Yes"
	default:
		return "No"
	}
}

// gradeLabel turns an estimated grade into a display label. An absent
// grade means the card is treated as raw.
func gradeLabel(grade *string) string {
	if grade == nil {
		return "RAW"
	}
	return card.NormalizeGrade(*grade)
}

// ratingDots renders a condition sub-score the way the report shows it.
// Unrecognized scores pass through unchanged.
func ratingDots(rating *string) string {
	switch r := orUnknown(rating); r {
	case "Excellent":
		return "●●●● Excellent"
	case "Good":
		return "●●●○ Good"
	case "Fair":
		return "●●○○ Fair"
	case "Poor":
		return "●○○○ Poor"
	default:
		return r
	}
}

func trendIcon(trend string) string {
	switch trend {
	case "Rising":
		return "📈"
	case "Declining":
		return "📉"
	default:
		return "➡️"
	}
}

// formatPrice renders a USD amount: thousands separators from 1000 up,
// whole dollars from 100 up, cents below that.
func formatPrice(v float64) string {
	switch {
	case v >= 1000:
		return groupThousands(fmt.Sprintf("%.0f", v))
	case v >= 100:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func priceOrUnknown(v *float64) string {
	if v == nil {
		return unknownMarker
	}
	return "$" + formatPrice(*v)
}

// priceRange renders a low-high span, falling back to whichever side is
// present.
func priceRange(low, high *float64) string {
	switch {
	case low != nil && high != nil:
		return fmt.Sprintf("$%s - $%s", formatPrice(*low), formatPrice(*high))
	case low != nil:
		return "$" + formatPrice(*low)
	case high != nil:
		return "$" + formatPrice(*high)
	default:
		return unknownMarker
	}
}

func gradedPrice(v card.Valuation, grade int) string {
	estimate, ok := v.PSAGraded[grade]
	if !ok {
		return unknownMarker
	}
	return "$" + formatPrice(estimate)
}

// sortedGrades lists every priced grade, highest first, so map order
// never leaks into the output.
func sortedGrades(v card.Valuation) []int {
	grades := make([]int, 0, len(v.PSAGraded))
	for g := range v.PSAGraded {
		grades = append(grades, g)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(grades)))
	return grades
}

// extraGrades lists priced grades outside the standard 10/9/8 rows,
// highest first.
func extraGrades(v card.Valuation) []int {
	var grades []int
	for g := range v.PSAGraded {
		switch g {
		case 10, 9, 8:
			continue
		}
		grades = append(grades, g)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(grades)))
	return grades
}
