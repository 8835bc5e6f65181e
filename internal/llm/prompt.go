package llm

import "github.com/vaulty/card-analyzer/internal/card"

const analysisPrompt = `You are an expert trading card analyst and appraiser. Analyze this trading card image and provide detailed information.

IMPORTANT: Respond ONLY with a valid JSON object, no additional text or markdown formatting.

Analyze the card and return this exact JSON structure:
{
    "identification": {
        "sport_category": "Sport or category (Baseball, Basketball, Football, Pokemon, MTG, Yu-Gi-Oh, etc.)",
        "player_character": "Player name or character name",
        "team": "Team name if applicable, or null",
        "year": "Year of the card",
        "manufacturer": "Card manufacturer (Topps, Panini, Upper Deck, WOTC, etc.)",
        "set_name": "Name of the card set",
        "card_number": "Card number in the set",
        "subset_parallel": "Subset or parallel name if applicable (Base, Rookie, Refractor, Holo, etc.)",
        "serial_numbered": "Serial numbering if visible (e.g., '/99', '/25'), or null",
        "rookie_card": true/false,
        "autograph": true/false,
        "memorabilia": "Type of memorabilia if present (jersey, patch, etc.), or null"
    },
    "condition_assessment": {
        "estimated_grade": "Estimated PSA grade 1-10",
        "centering": "Poor/Fair/Good/Excellent",
        "corners": "Poor/Fair/Good/Excellent",
        "edges": "Poor/Fair/Good/Excellent",
        "surface": "Poor/Fair/Good/Excellent",
        "notable_flaws": ["List any visible flaws"]
    },
    "market_values": {
        "raw_low": "Low estimate for ungraded card in USD",
        "raw_mid": "Mid estimate for ungraded card in USD",
        "raw_high": "High estimate for ungraded card in USD",
        "psa_10": "Estimated PSA 10 value in USD",
        "psa_9": "Estimated PSA 9 value in USD",
        "psa_8": "Estimated PSA 8 value in USD",
        "value_trend": "Rising/Stable/Declining",
        "market_notes": "Any relevant market information"
    },
    "confidence": {
        "identification_confidence": "High/Medium/Low",
        "value_confidence": "High/Medium/Low",
        "notes": "Any uncertainty or additional notes"
    },
    "description": "A brief 1-2 sentence description of the card"
}

If you cannot identify certain details, use "Unknown" for strings and null for optional fields.
For values, provide realistic market estimates based on your knowledge up to your training cutoff.
All USD values should be numbers only (no $ symbol or commas).`

// AnalysisRequest pairs the fixed instruction text with one image payload.
// It exists only for the duration of a single call.
type AnalysisRequest struct {
	Instruction string
	Image       *card.ImagePayload
}

// BuildRequest assembles the model request for a card image. The
// instruction text is fixed; the same payload always produces the same
// request.
func BuildRequest(image *card.ImagePayload) AnalysisRequest {
	return AnalysisRequest{Instruction: analysisPrompt, Image: image}
}
