package card

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		analysis Analysis
		want     string
	}{
		{
			name: "full identity",
			analysis: Analysis{Identity: Identity{
				Player:     strPtr("Mike Trout"),
				Year:       intPtr(2011),
				SetName:    strPtr("Topps Update"),
				CardNumber: strPtr("US175"),
			}},
			want: "Mike Trout - 2011 Topps Update #US175",
		},
		{
			name: "card number already prefixed",
			analysis: Analysis{Identity: Identity{
				Player:     strPtr("Charizard"),
				CardNumber: strPtr("#4"),
			}},
			want: "Charizard - #4",
		},
		{
			name: "player only",
			analysis: Analysis{Identity: Identity{
				Player: strPtr("Wembanyama"),
			}},
			want: "Wembanyama",
		},
		{
			name:     "nothing recognized",
			analysis: Analysis{},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.analysis.Title())
		})
	}
}

func TestHasIdentity(t *testing.T) {
	a := Analysis{}
	assert.False(t, a.HasIdentity())

	a.Identity.Year = intPtr(2011)
	assert.True(t, a.HasIdentity())
}

func TestHasValuation(t *testing.T) {
	a := Analysis{}
	assert.False(t, a.HasValuation())

	a.Valuation.RawMid = floatPtr(25)
	assert.True(t, a.HasValuation())

	a = Analysis{}
	a.Valuation.PSAGraded = map[int]float64{9: 120}
	assert.True(t, a.HasValuation())
}

func TestAnalysisJSONRoundTrip(t *testing.T) {
	// A partially populated analysis must survive a marshal/unmarshal
	// cycle unchanged, with absent fields staying absent rather than
	// collapsing to zero values.
	orig := Analysis{
		Identity: Identity{
			Player: strPtr("Mike Trout"),
			Year:   intPtr(2011),
		},
		Valuation: Valuation{
			RawMid:    floatPtr(450),
			PSAGraded: map[int]float64{10: 3200, 9: 1500},
		},
		RawText: "Player: Mike Trout\nYear: 2011",
	}

	data, err := json.Marshal(&orig)
	require.NoError(t, err)

	// Absent optionals serialize as explicit nulls, never dropped keys.
	s := string(data)
	assert.Contains(t, s, `"team":null`)
	assert.Contains(t, s, `"estimated_grade":null`)
	assert.Contains(t, s, `"year":2011`)
	// encoding/json orders map keys by their string form, so "10" < "9".
	assert.Contains(t, s, `"psa_graded_estimates":{"10":3200,"9":1500}`)
	assert.NotContains(t, s, `"player_character":null`)

	var got Analysis
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, orig, got)
	assert.Nil(t, got.Identity.Team)
	assert.Nil(t, got.Valuation.RawLow)
}

func TestAnalysisJSONKeysComplete(t *testing.T) {
	data, err := json.Marshal(&Analysis{})
	require.NoError(t, err)

	for _, key := range []string{
		"identification", "condition_assessment", "market_values",
		"confidence", "description", "raw_text",
		"sport_category", "player_character", "rookie_card",
		"raw_low", "psa_graded_estimates", "value_trend",
	} {
		assert.True(t, strings.Contains(string(data), `"`+key+`"`), "missing key %s", key)
	}
}

func TestNormalizeGrade(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10", "PSA 10"},
		{"PSA 8", "PSA 8"},
		{"psa9", "PSA 9"},
		{"8.5", "PSA 8.5"},
		{"Gem Mint 10", "PSA 10"},
		{"GEM MT", "PSA 10"},
		{"Ungraded", "RAW"},
		{"not graded", "RAW"},
		{"raw", "RAW"},
		{"", "RAW"},
		{"   ", "RAW"},
		{"Authentic", "Authentic"},
		{"Grade 12", "Grade 12"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeGrade(tt.in))
		})
	}
}
