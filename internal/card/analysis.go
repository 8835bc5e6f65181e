package card

import (
	"regexp"
	"strconv"
	"strings"
)

// Identity holds what the model recognized on the card front. Fields are
// pointers so that "the model said nothing" stays distinct from an empty
// or false value.
type Identity struct {
	Category     *string `json:"sport_category"`
	Player       *string `json:"player_character"`
	Team         *string `json:"team"`
	Year         *int    `json:"year"`
	Manufacturer *string `json:"manufacturer"`
	SetName      *string `json:"set_name"`
	CardNumber   *string `json:"card_number"`
	Parallel     *string `json:"subset_parallel"`
	SerialNumber *string `json:"serial_numbered"`
	Rookie       *bool   `json:"rookie_card"`
	Autograph    *bool   `json:"autograph"`
	Memorabilia  *string `json:"memorabilia"`
}

// Condition is the model's grading estimate. Grade is the PSA-style
// grade as reported (usually "1" through "10"); the sub-scores are
// qualitative ratings on the Poor/Fair/Good/Excellent scale.
type Condition struct {
	Grade     *string  `json:"estimated_grade"`
	Centering *string  `json:"centering"`
	Corners   *string  `json:"corners"`
	Edges     *string  `json:"edges"`
	Surface   *string  `json:"surface"`
	Flaws     []string `json:"notable_flaws"`
}

// Valuation holds USD market estimates for the raw card and the graded
// tiers. PSAGraded maps a PSA grade (1 through 10) to the estimate for a
// copy slabbed at that grade; absent grades mean the model gave no
// figure, never zero.
type Valuation struct {
	RawLow    *float64        `json:"raw_low"`
	RawMid    *float64        `json:"raw_mid"`
	RawHigh   *float64        `json:"raw_high"`
	PSAGraded map[int]float64 `json:"psa_graded_estimates"`
	Trend     *string         `json:"value_trend"`
	Notes     *string         `json:"market_notes"`
}

// Confidence reports how sure the model was, on a High/Medium/Low scale.
type Confidence struct {
	Identification *string `json:"identification_confidence"`
	Value          *string `json:"value_confidence"`
	Notes          *string `json:"notes"`
}

// Analysis is the structured result of one vision call. RawText keeps the
// model's unprocessed reply so it can be shown verbatim or used as a
// fallback when structured extraction was partial.
type Analysis struct {
	Identity    Identity   `json:"identification"`
	Condition   Condition  `json:"condition_assessment"`
	Valuation   Valuation  `json:"market_values"`
	Confidence  Confidence `json:"confidence"`
	Description *string    `json:"description"`
	RawText     string     `json:"raw_text"`
}

// HasIdentity reports whether at least one identification field was
// recognized.
func (a *Analysis) HasIdentity() bool {
	id := a.Identity
	return id.Player != nil || id.Year != nil || id.SetName != nil ||
		id.CardNumber != nil || id.Manufacturer != nil || id.Category != nil
}

// HasValuation reports whether any market estimate is present.
func (a *Analysis) HasValuation() bool {
	v := a.Valuation
	return v.RawLow != nil || v.RawMid != nil || v.RawHigh != nil ||
		len(v.PSAGraded) > 0
}

// HasCondition reports whether any condition field is present.
func (a *Analysis) HasCondition() bool {
	c := a.Condition
	return c.Grade != nil || c.Centering != nil || c.Corners != nil ||
		c.Edges != nil || c.Surface != nil || len(c.Flaws) > 0
}

// Title builds a short "Player - Year Set #Number" line from whatever
// identity fields are present. Returns "" when nothing was recognized.
func (a *Analysis) Title() string {
	var parts []string
	if a.Identity.Player != nil {
		parts = append(parts, *a.Identity.Player)
	}
	var detail []string
	if a.Identity.Year != nil {
		detail = append(detail, strconv.Itoa(*a.Identity.Year))
	}
	if a.Identity.SetName != nil {
		detail = append(detail, *a.Identity.SetName)
	}
	if a.Identity.CardNumber != nil {
		detail = append(detail, "#"+strings.TrimPrefix(*a.Identity.CardNumber, "#"))
	}
	if len(detail) > 0 {
		parts = append(parts, strings.Join(detail, " "))
	}
	return strings.Join(parts, " - ")
}

var gradeNumberRe = regexp.MustCompile(`\d+(\.\d)?`)

// NormalizeGrade maps a free-form grade string from the model onto a
// display label. Numeric grades between 1 and 10 (halves included)
// become "PSA n", gem-mint wording becomes "PSA 10", and ungraded
// wording becomes "RAW". Anything else, such as "Authentic", passes
// through untouched.
func NormalizeGrade(grade string) string {
	g := strings.TrimSpace(grade)
	if g == "" {
		return "RAW"
	}
	upper := strings.ToUpper(g)
	switch upper {
	case "RAW", "UNGRADED", "NOT GRADED":
		return "RAW"
	}
	if strings.Contains(upper, "GEM") {
		return "PSA 10"
	}
	if m := gradeNumberRe.FindString(g); m != "" {
		if n, err := strconv.ParseFloat(m, 64); err == nil && n >= 1 && n <= 10 {
			return "PSA " + m
		}
	}
	return g
}
