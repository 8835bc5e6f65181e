package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vaulty/card-analyzer/internal/card"
)

// ExtractAnalysis turns a raw model reply into a structured Analysis.
// It prefers the JSON object the prompt asks for; replies that come back
// as prose fall through to a labeled-line scan. Extraction is best
// effort: recognized fields get set, everything else stays absent. A
// reply that yields no fields at all is reported as ErrEmptyResponse.
func ExtractAnalysis(text string) (*card.Analysis, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyResponse
	}

	analysis := &card.Analysis{RawText: text}

	parsed := false
	if jsonStr, err := extractJSONObject(stripCodeFences(trimmed)); err == nil {
		parsed = parseWireJSON(jsonStr, analysis)
	}
	if !parsed {
		scanLabeledLines(trimmed, analysis)
	}

	if !analysis.HasIdentity() && !analysis.HasCondition() && !analysis.HasValuation() &&
		analysis.Description == nil {
		return nil, fmt.Errorf("%w: no card fields found in reply", ErrEmptyResponse)
	}
	return analysis, nil
}

// extractJSONObject extracts a JSON object from text that might contain
// surrounding prose.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return text[start : end+1], nil
}

// stripCodeFences unwraps a markdown code block if the reply arrived
// inside one.
func stripCodeFences(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	} else if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if j := strings.Index(rest, "```"); j >= 0 {
			s = rest[:j]
		}
	}
	return strings.TrimSpace(s)
}

// ===== JSON path =====

// wireText accepts a JSON string or number. The model's "Unknown" and
// "N/A" placeholders count as absent, as does null.
type wireText struct{ val *string }

func (t *wireText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v := cleanText(s); v != "" {
			t.val = &v
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		s := strconv.FormatFloat(n, 'f', -1, 64)
		t.val = &s
	}
	return nil
}

// wireYear accepts a JSON number or a string containing a four-digit
// year. Fractional and negative numbers stay absent.
type wireYear struct{ val *int }

func (y *wireYear) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n >= 0 && n == float64(int(n)) {
			v := int(n)
			y.val = &v
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		setYearIfAbsent(&y.val, cleanText(s))
	}
	return nil
}

// wireMoney accepts a JSON number or a string carrying currency noise
// ("$1,200", "800 - 1200 USD"). A range collapses to its midpoint.
type wireMoney struct{ val *float64 }

func (m *wireMoney) UnmarshalJSON(data []byte) error {
	// Unmarshal treats null as a no-op on a float64, which would read
	// back as zero. Absent has to stay absent.
	if string(data) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n >= 0 {
			m.val = &n
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		low, high := parseMoneyRange(s)
		switch {
		case low != nil && high != nil:
			mid := (*low + *high) / 2
			m.val = &mid
		case low != nil:
			m.val = low
		}
	}
	return nil
}

// wireFlag accepts a JSON bool or a yes/no string.
type wireFlag struct{ val *bool }

func (f *wireFlag) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		f.val = &b
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.val = parseFlagText(s)
	}
	return nil
}

// wireList accepts a JSON array of strings or a single string.
type wireList struct{ vals []string }

func (l *wireList) UnmarshalJSON(data []byte) error {
	var items []any
	if err := json.Unmarshal(data, &items); err == nil {
		for _, item := range items {
			if s, ok := item.(string); ok {
				if v := cleanText(s); v != "" {
					l.vals = append(l.vals, v)
				}
			}
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v := cleanText(s); v != "" {
			l.vals = append(l.vals, v)
		}
	}
	return nil
}

// wireAnalysis mirrors the JSON structure the prompt asks for, with
// every leaf tolerant about its type.
type wireAnalysis struct {
	Identification struct {
		SportCategory   wireText `json:"sport_category"`
		PlayerCharacter wireText `json:"player_character"`
		Team            wireText `json:"team"`
		Year            wireYear `json:"year"`
		Manufacturer    wireText `json:"manufacturer"`
		SetName         wireText `json:"set_name"`
		CardNumber      wireText `json:"card_number"`
		SubsetParallel  wireText `json:"subset_parallel"`
		SerialNumbered  wireText `json:"serial_numbered"`
		RookieCard      wireFlag `json:"rookie_card"`
		Autograph       wireFlag `json:"autograph"`
		Memorabilia     wireText `json:"memorabilia"`
	} `json:"identification"`
	ConditionAssessment struct {
		EstimatedGrade wireText `json:"estimated_grade"`
		Centering      wireText `json:"centering"`
		Corners        wireText `json:"corners"`
		Edges          wireText `json:"edges"`
		Surface        wireText `json:"surface"`
		NotableFlaws   wireList `json:"notable_flaws"`
	} `json:"condition_assessment"`
	MarketValues struct {
		RawLow      wireMoney `json:"raw_low"`
		RawMid      wireMoney `json:"raw_mid"`
		RawHigh     wireMoney `json:"raw_high"`
		PSA10       wireMoney `json:"psa_10"`
		PSA9        wireMoney `json:"psa_9"`
		PSA8        wireMoney `json:"psa_8"`
		ValueTrend  wireText  `json:"value_trend"`
		MarketNotes wireText  `json:"market_notes"`
	} `json:"market_values"`
	Confidence struct {
		Identification wireText `json:"identification_confidence"`
		Value          wireText `json:"value_confidence"`
		Notes          wireText `json:"notes"`
	} `json:"confidence"`
	Description wireText `json:"description"`
}

func parseWireJSON(jsonStr string, a *card.Analysis) bool {
	var w wireAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &w); err != nil {
		return false
	}

	a.Identity = card.Identity{
		Category:     w.Identification.SportCategory.val,
		Player:       w.Identification.PlayerCharacter.val,
		Team:         w.Identification.Team.val,
		Year:         w.Identification.Year.val,
		Manufacturer: w.Identification.Manufacturer.val,
		SetName:      w.Identification.SetName.val,
		CardNumber:   w.Identification.CardNumber.val,
		Parallel:     w.Identification.SubsetParallel.val,
		SerialNumber: w.Identification.SerialNumbered.val,
		Rookie:       w.Identification.RookieCard.val,
		Autograph:    w.Identification.Autograph.val,
		Memorabilia:  w.Identification.Memorabilia.val,
	}
	a.Condition = card.Condition{
		Grade:     w.ConditionAssessment.EstimatedGrade.val,
		Centering: w.ConditionAssessment.Centering.val,
		Corners:   w.ConditionAssessment.Corners.val,
		Edges:     w.ConditionAssessment.Edges.val,
		Surface:   w.ConditionAssessment.Surface.val,
		Flaws:     w.ConditionAssessment.NotableFlaws.vals,
	}
	a.Valuation = card.Valuation{
		RawLow:  w.MarketValues.RawLow.val,
		RawMid:  w.MarketValues.RawMid.val,
		RawHigh: w.MarketValues.RawHigh.val,
		Trend:   w.MarketValues.ValueTrend.val,
		Notes:   w.MarketValues.MarketNotes.val,
	}
	for grade, m := range map[int]wireMoney{
		10: w.MarketValues.PSA10,
		9:  w.MarketValues.PSA9,
		8:  w.MarketValues.PSA8,
	} {
		if m.val == nil {
			continue
		}
		if a.Valuation.PSAGraded == nil {
			a.Valuation.PSAGraded = make(map[int]float64)
		}
		a.Valuation.PSAGraded[grade] = *m.val
	}
	a.Confidence = card.Confidence{
		Identification: w.Confidence.Identification.val,
		Value:          w.Confidence.Value.val,
		Notes:          w.Confidence.Notes.val,
	}
	a.Description = w.Description.val
	return true
}

// ===== labeled-line path =====

// fieldRule maps the labels a field can appear under to the setter for
// that field. Matching is case-insensitive; at any position the longest
// label wins.
type fieldRule struct {
	labels []string
	apply  func(a *card.Analysis, value string)
}

var fieldRules = []fieldRule{
	{labels: []string{"player/character", "player", "character", "joueur", "carte"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Identity.Player, v) }},
	{labels: []string{"category", "sport"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Identity.Category, v) }},
	{labels: []string{"team", "équipe"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Identity.Team, v) }},
	{labels: []string{"year", "année"},
		apply: func(a *card.Analysis, v string) { setYearIfAbsent(&a.Identity.Year, v) }},
	{labels: []string{"manufacturer", "brand", "marque"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Identity.Manufacturer, v) }},
	{labels: []string{"set name", "set"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Identity.SetName, v) }},
	{labels: []string{"card number", "card #", "number", "numéro"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Identity.CardNumber, v) }},
	{labels: []string{"parallel/subset", "subset/parallel", "parallel", "subset", "type"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Identity.Parallel, v) }},
	{labels: []string{"serial number", "serial #", "serial", "numbered"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Identity.SerialNumber, v) }},
	{labels: []string{"rookie card", "rookie"},
		apply: func(a *card.Analysis, v string) { setFlagIfAbsent(&a.Identity.Rookie, v) }},
	{labels: []string{"autograph", "auto"},
		apply: func(a *card.Analysis, v string) { setFlagIfAbsent(&a.Identity.Autograph, v) }},
	{labels: []string{"memorabilia"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Identity.Memorabilia, v) }},

	{labels: []string{"estimated grade", "est. grade", "overall grade", "grade", "note globale", "condition"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Condition.Grade, v) }},
	{labels: []string{"centering", "centrage"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Condition.Centering, v) }},
	{labels: []string{"corners", "coins"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Condition.Corners, v) }},
	{labels: []string{"edges", "bordures"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Condition.Edges, v) }},
	{labels: []string{"surface"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Condition.Surface, v) }},
	{labels: []string{"notable flaws", "flaws", "défauts"},
		apply: func(a *card.Analysis, v string) {
			if len(a.Condition.Flaws) > 0 {
				return
			}
			for _, f := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' }) {
				if f = cleanText(f); f != "" {
					a.Condition.Flaws = append(a.Condition.Flaws, f)
				}
			}
		}},

	{labels: []string{"raw value", "raw", "ungraded", "non gradée"},
		apply: func(a *card.Analysis, v string) {
			if a.Valuation.RawLow != nil || a.Valuation.RawMid != nil || a.Valuation.RawHigh != nil {
				return
			}
			low, high := parseMoneyRange(v)
			switch {
			case low != nil && high != nil:
				a.Valuation.RawLow, a.Valuation.RawHigh = low, high
			case low != nil:
				a.Valuation.RawMid = low
			}
		}},
	{labels: []string{"value trend", "market trend", "trend", "tendance"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Valuation.Trend, v) }},
	{labels: []string{"market notes"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Valuation.Notes, v) }},

	{labels: []string{"identification confidence", "id confidence", "confidence", "niveau de confiance"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Confidence.Identification, v) }},
	{labels: []string{"value confidence"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Confidence.Value, v) }},

	{labels: []string{"description", "summary"},
		apply: func(a *card.Analysis, v string) { setIfAbsent(&a.Description, v) }},
}

// Prose replies quote whichever grades the model priced, not just the
// three the prompt asks about. One rule per grade keeps the scan total
// over PSA 1 through PSA 10.
func init() {
	for grade := 10; grade >= 1; grade-- {
		g := grade
		labels := []string{fmt.Sprintf("psa %d", g), fmt.Sprintf("psa%d", g)}
		if g == 10 {
			labels = append(labels, "gem mint")
		}
		fieldRules = append(fieldRules, fieldRule{
			labels: labels,
			apply:  func(a *card.Analysis, v string) { setGradedIfAbsent(a, g, v) },
		})
	}
}

type labelMatch struct {
	rule       *fieldRule
	start      int
	valueStart int
}

// scanLabeledLines walks the reply line by line and applies every
// "Label: value" pair it can recognize. Several pairs may share one line
// ("Player: Mike Trout, Year: 2011").
func scanLabeledLines(text string, a *card.Analysis) {
	for _, rawLine := range strings.Split(text, "\n") {
		line := normalizeLine(rawLine)
		if line == "" || !strings.Contains(line, ":") {
			continue
		}

		matches := findLabels(line)
		for i, m := range matches {
			end := len(line)
			if i+1 < len(matches) {
				end = matches[i+1].start
			}
			value := cleanText(strings.Trim(line[m.valueStart:end], " \t,;|-"))
			if value != "" {
				m.rule.apply(a, value)
			}
		}
	}
}

// normalizeLine strips markdown bullets and emphasis so label matching
// sees plain text.
func normalizeLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•#> \t")
	line = strings.ReplaceAll(line, "**", "")
	line = strings.ReplaceAll(line, "__", "")
	return strings.TrimSpace(line)
}

// findLabels locates every known "label:" occurrence in a line, in
// order. Overlapping matches resolve to the longest label.
func findLabels(line string) []labelMatch {
	lower := strings.ToLower(line)

	var matches []labelMatch
	for r := range fieldRules {
		rule := &fieldRules[r]
		for _, label := range rule.labels {
			offset := 0
			for {
				idx := strings.Index(lower[offset:], label)
				if idx < 0 {
					break
				}
				idx += offset
				offset = idx + 1

				if idx > 0 && isWordChar(lower[idx-1]) {
					continue
				}
				colon := skipSpaces(lower, idx+len(label))
				// Tolerate a qualifier between label and colon,
				// as in "PSA 10 (Gem Mint): $3,200".
				if colon < len(lower) && lower[colon] == '(' {
					close := strings.IndexByte(lower[colon:], ')')
					if close < 0 {
						continue
					}
					colon = skipSpaces(lower, colon+close+1)
				}
				if colon >= len(lower) || lower[colon] != ':' {
					continue
				}
				matches = append(matches, labelMatch{rule: rule, start: idx, valueStart: colon + 1})
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		return matches[i].valueStart > matches[j].valueStart
	})

	// Drop matches that start inside an earlier match's label or value
	// prefix ("number" inside "card number").
	kept := matches[:0]
	lastValueStart := -1
	for _, m := range matches {
		if m.start < lastValueStart {
			continue
		}
		kept = append(kept, m)
		lastValueStart = m.valueStart
	}
	return kept
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

func isDigitByte(c byte) bool {
	return c >= '0' && c <= '9'
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// cleanText trims whitespace and filters the placeholders the model uses
// for missing data.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "unknown", "n/a", "none", "null", "-", "?":
		return ""
	}
	return s
}

func setIfAbsent(dst **string, v string) {
	if *dst == nil {
		s := v
		*dst = &s
	}
}

func setFlagIfAbsent(dst **bool, v string) {
	if *dst == nil {
		*dst = parseFlagText(v)
	}
}

// yearRe matches a standalone four-digit year.
var yearRe = regexp.MustCompile(`\b\d{4}\b`)

func setYearIfAbsent(dst **int, v string) {
	if *dst != nil {
		return
	}
	m := yearRe.FindString(v)
	if m == "" {
		return
	}
	if n, err := strconv.Atoi(m); err == nil {
		*dst = &n
	}
}

func setGradedIfAbsent(a *card.Analysis, grade int, v string) {
	if _, ok := a.Valuation.PSAGraded[grade]; ok {
		return
	}
	low, high := parseMoneyRange(v)
	var amount *float64
	switch {
	case low != nil && high != nil:
		mid := (*low + *high) / 2
		amount = &mid
	case low != nil:
		amount = low
	}
	if amount == nil {
		return
	}
	if a.Valuation.PSAGraded == nil {
		a.Valuation.PSAGraded = make(map[int]float64)
	}
	a.Valuation.PSAGraded[grade] = *amount
}

func parseFlagText(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "oui", "y", "✓":
		v := true
		return &v
	case "false", "no", "non", "n":
		v := false
		return &v
	}
	return nil
}

// moneyRe matches amounts like "1,200.50", "800" and "1 200".
var moneyRe = regexp.MustCompile(`\d[\d,\s]*(?:\.\d+)?`)

// parseMoneyRange pulls up to two amounts out of free-form text.
// "$800 - $1,200" gives a low and a high; "$450" gives only a low.
// Negative amounts are dropped; a dash between two amounts is a range
// separator, not a sign.
func parseMoneyRange(s string) (low, high *float64) {
	var nums []float64
	for _, loc := range moneyRe.FindAllStringIndex(s, -1) {
		start := loc[0]
		if start > 0 && s[start-1] == '-' && (start == 1 || !isDigitByte(s[start-2])) {
			continue
		}
		cleaned := strings.Map(func(r rune) rune {
			if r == ',' || r == ' ' || r == '\t' {
				return -1
			}
			return r
		}, s[loc[0]:loc[1]])
		if n, err := strconv.ParseFloat(cleaned, 64); err == nil {
			nums = append(nums, n)
		}
	}

	switch {
	case len(nums) == 0:
		return nil, nil
	case len(nums) == 1:
		return &nums[0], nil
	case nums[1] > nums[0]:
		return &nums[0], &nums[1]
	default:
		return &nums[0], nil
	}
}
