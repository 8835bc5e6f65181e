package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAnalysisJSON(t *testing.T) {
	reply := `{
  "identification": {
    "sport_category": "Baseball",
    "player_character": "Mike Trout",
    "team": "Los Angeles Angels",
    "year": 2011,
    "manufacturer": "Topps",
    "set_name": "Topps Update",
    "card_number": "US175",
    "subset_parallel": null,
    "serial_numbered": "Unknown",
    "rookie_card": true,
    "autograph": false,
    "memorabilia": "None"
  },
  "condition_assessment": {
    "estimated_grade": "8",
    "centering": "55/45",
    "corners": "Sharp with minor wear",
    "edges": "Clean",
    "surface": "Light scratching",
    "notable_flaws": ["Slight corner ding", "Print line on back"]
  },
  "market_values": {
    "raw_low": 650,
    "raw_mid": "$800 - $1,200",
    "raw_high": 1400,
    "psa_10": "$3,200",
    "psa_9": 1500,
    "psa_8": null,
    "value_trend": "Rising",
    "market_notes": "Strong demand for Trout rookies"
  },
  "confidence": {
    "identification_confidence": "High",
    "value_confidence": "Medium",
    "notes": "Serial numbering not visible"
  },
  "description": "2011 Topps Update Mike Trout rookie card #US175."
}`

	analysis, err := ExtractAnalysis(reply)
	require.NoError(t, err)

	assert.Equal(t, "Mike Trout", *analysis.Identity.Player)
	assert.Equal(t, "Baseball", *analysis.Identity.Category)
	assert.Equal(t, 2011, *analysis.Identity.Year)
	assert.Equal(t, "US175", *analysis.Identity.CardNumber)
	assert.Nil(t, analysis.Identity.Parallel, "null stays absent")
	assert.Nil(t, analysis.Identity.SerialNumber, `"Unknown" counts as absent`)
	assert.Nil(t, analysis.Identity.Memorabilia, `"None" counts as absent`)
	require.NotNil(t, analysis.Identity.Rookie)
	assert.True(t, *analysis.Identity.Rookie)
	require.NotNil(t, analysis.Identity.Autograph)
	assert.False(t, *analysis.Identity.Autograph)

	assert.Equal(t, "8", *analysis.Condition.Grade)
	assert.Equal(t, "55/45", *analysis.Condition.Centering)
	assert.Equal(t, []string{"Slight corner ding", "Print line on back"}, analysis.Condition.Flaws)

	assert.Equal(t, 650.0, *analysis.Valuation.RawLow)
	assert.Equal(t, 1000.0, *analysis.Valuation.RawMid, "string range collapses to midpoint")
	assert.Equal(t, 1400.0, *analysis.Valuation.RawHigh)
	assert.Equal(t, 3200.0, analysis.Valuation.PSAGraded[10], "currency string parses")
	assert.Equal(t, 1500.0, analysis.Valuation.PSAGraded[9])
	assert.NotContains(t, analysis.Valuation.PSAGraded, 8, "null stays absent")
	assert.Equal(t, "Rising", *analysis.Valuation.Trend)

	assert.Equal(t, "High", *analysis.Confidence.Identification)
	assert.Equal(t, "Medium", *analysis.Confidence.Value)
	require.NotNil(t, analysis.Description)
	assert.Equal(t, reply, analysis.RawText)
}

func TestExtractAnalysisFencedJSON(t *testing.T) {
	reply := "Here is the analysis you asked for:\n\n```json\n" +
		`{
  "identification": {"player_character": "Shohei Ohtani", "year": "2018"},
  "description": "2018 Topps Shohei Ohtani rookie card."
}` +
		"\n```\n\nLet me know if you need anything else."

	analysis, err := ExtractAnalysis(reply)
	require.NoError(t, err)
	assert.Equal(t, "Shohei Ohtani", *analysis.Identity.Player)
	assert.Equal(t, 2018, *analysis.Identity.Year, "string year parses")
	require.NotNil(t, analysis.Description)
	assert.Equal(t, reply, analysis.RawText, "raw text keeps the full reply")
}

func TestExtractAnalysisLabeledLines(t *testing.T) {
	reply := `
Here's what I can make out from the photo.

**Player:** Mike Trout
Team: Los Angeles Angels
Year: 2011
Set: Topps Update
Card Number: #US175
Rookie Card: Yes
Autograph: No

- Estimated Grade: 8
- Centering: 55/45
- Notable flaws: light corner wear, small surface scratch

Raw value: $800 - $1,200
PSA 10 (Gem Mint): $3,200
PSA 9: $1,500
Market trend: Rising`

	analysis, err := ExtractAnalysis(reply)
	require.NoError(t, err)

	assert.Equal(t, "Mike Trout", *analysis.Identity.Player)
	assert.Equal(t, "Los Angeles Angels", *analysis.Identity.Team)
	assert.Equal(t, 2011, *analysis.Identity.Year)
	assert.Equal(t, "Topps Update", *analysis.Identity.SetName)
	assert.Equal(t, "#US175", *analysis.Identity.CardNumber)
	require.NotNil(t, analysis.Identity.Rookie)
	assert.True(t, *analysis.Identity.Rookie)
	require.NotNil(t, analysis.Identity.Autograph)
	assert.False(t, *analysis.Identity.Autograph)

	assert.Equal(t, "8", *analysis.Condition.Grade)
	assert.Equal(t, "55/45", *analysis.Condition.Centering)
	assert.Equal(t, []string{"light corner wear", "small surface scratch"}, analysis.Condition.Flaws)

	assert.Equal(t, 800.0, *analysis.Valuation.RawLow)
	assert.Equal(t, 1200.0, *analysis.Valuation.RawHigh)
	assert.Nil(t, analysis.Valuation.RawMid)
	assert.Equal(t, 3200.0, analysis.Valuation.PSAGraded[10], "qualifier between label and colon is tolerated")
	assert.Equal(t, 1500.0, analysis.Valuation.PSAGraded[9])
	assert.Equal(t, "Rising", *analysis.Valuation.Trend)
}

func TestExtractAnalysisFrenchLabels(t *testing.T) {
	reply := `
Joueur: Zinédine Zidane
Équipe: Real Madrid
Année: 2002
Marque: Panini
Note globale: 7
Coins: Usés
Non gradée: 50 - 80 USD
Tendance: Stable`

	analysis, err := ExtractAnalysis(reply)
	require.NoError(t, err)

	assert.Equal(t, "Zinédine Zidane", *analysis.Identity.Player)
	assert.Equal(t, "Real Madrid", *analysis.Identity.Team)
	assert.Equal(t, 2002, *analysis.Identity.Year)
	assert.Equal(t, "Panini", *analysis.Identity.Manufacturer)
	assert.Equal(t, "7", *analysis.Condition.Grade)
	assert.Equal(t, "Usés", *analysis.Condition.Corners)
	assert.Equal(t, 50.0, *analysis.Valuation.RawLow)
	assert.Equal(t, 80.0, *analysis.Valuation.RawHigh)
	assert.Equal(t, "Stable", *analysis.Valuation.Trend)
}

func TestExtractAnalysisPairsOnOneLine(t *testing.T) {
	analysis, err := ExtractAnalysis("Player: Mike Trout, Year: 2011")
	require.NoError(t, err)
	assert.Equal(t, "Mike Trout", *analysis.Identity.Player)
	assert.Equal(t, 2011, *analysis.Identity.Year)
	assert.False(t, analysis.HasValuation(), "identity-only reply must leave valuation absent")
}

func TestExtractAnalysisUncommonGrades(t *testing.T) {
	reply := "Player: Ken Griffey Jr.\nPSA 7: $40\nPSA 4: $12"
	analysis, err := ExtractAnalysis(reply)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{7: 40, 4: 12}, analysis.Valuation.PSAGraded)
}

func TestExtractAnalysisYearShapes(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  *int
	}{
		{name: "number", reply: `{"identification": {"player_character": "Jordan", "year": 1989}}`, want: intPtr(1989)},
		{name: "string with noise", reply: `{"identification": {"player_character": "Jordan", "year": "circa 1989"}}`, want: intPtr(1989)},
		{name: "null", reply: `{"identification": {"player_character": "Jordan", "year": null}}`, want: nil},
		{name: "unknown placeholder", reply: `{"identification": {"player_character": "Jordan", "year": "Unknown"}}`, want: nil},
		{name: "two-digit string", reply: `{"identification": {"player_character": "Jordan", "year": "'89"}}`, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := ExtractAnalysis(tt.reply)
			require.NoError(t, err)
			assert.Equal(t, tt.want, analysis.Identity.Year)
		})
	}
}

func TestExtractAnalysisMalformedJSONFallsBack(t *testing.T) {
	reply := "{ not json at all\nPlayer: Michael Jordan\n}"
	analysis, err := ExtractAnalysis(reply)
	require.NoError(t, err)
	assert.Equal(t, "Michael Jordan", *analysis.Identity.Player)
}

func TestExtractAnalysisEmpty(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "whitespace only", text: "  \n\t  "},
		{name: "no recognizable fields", text: "I can't tell what card this is from the photo, sorry."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractAnalysis(tt.text)
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestParseMoneyRange(t *testing.T) {
	tests := []struct {
		name string
		text string
		low  *float64
		high *float64
	}{
		{name: "single amount", text: "$450", low: floatPtr(450)},
		{name: "range", text: "$800 - $1,200", low: floatPtr(800), high: floatPtr(1200)},
		{name: "range with currency suffix", text: "50 - 80 USD", low: floatPtr(50), high: floatPtr(80)},
		{name: "decimal", text: "about $1,200.50", low: floatPtr(1200.50)},
		{name: "thousands with space", text: "1 200", low: floatPtr(1200)},
		{name: "descending keeps first", text: "$1,200 - $800", low: floatPtr(1200)},
		{name: "hyphenated range", text: "800-1200", low: floatPtr(800), high: floatPtr(1200)},
		{name: "en dash range", text: "800 – 1200", low: floatPtr(800), high: floatPtr(1200)},
		{name: "negative dropped", text: "-50", low: nil, high: nil},
		{name: "no numbers", text: "not listed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high := parseMoneyRange(tt.text)
			assert.Equal(t, tt.low, low)
			assert.Equal(t, tt.high, high)
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Mike Trout  ", want: "Mike Trout"},
		{in: "Unknown", want: ""},
		{in: "n/a", want: ""},
		{in: "None", want: ""},
		{in: "-", want: ""},
		{in: "55/45", want: "55/45"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanText(tt.in))
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}
