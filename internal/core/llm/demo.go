package llm

import (
	"strings"

	"github.com/ananyajain10/pitchparse-ai/internal/models"
)

// IsDemoKey reports whether the key activates demo mode instead of a real
// model call.
func IsDemoKey(key string) bool {
	return strings.Contains(key, models.DemoKeyMarker)
}

// DemoAnalysis returns the canned analysis served in demo mode.
func DemoAnalysis() *models.PitchAnalysis {
	return &models.PitchAnalysis{
		FounderAnalysis: models.FounderAnalysis{
			Names:       []string{"Demo Founder"},
			Background:  "Serial entrepreneur with two prior exits in developer tooling.",
			Credibility: 7,
			Assessment:  "Capable founder; full team composition not described in the deck.",
		},
		MarketSize: models.MarketSize{
			TAM:        "$32B",
			SAM:        "$4.5B",
			SOM:        "$300M",
			Growth:     "22% CAGR",
			Assessment: "Large addressable market with credible near-term segment.",
		},
		AIVertical: models.AIVertical{
			Connection:    "Applies large language models to automate document-heavy workflows.",
			Strength:      7,
			Opportunities: []string{"Workflow automation", "Vertical copilots"},
			Assessment:    "Clear AI angle, though defensibility depends on proprietary data.",
		},
		VCAnalysis: models.VCAnalysis{
			Pros:            []string{"Experienced founder", "Growing market", "Early revenue"},
			Cons:            []string{"Crowded space", "Unclear moat"},
			Rating:          6,
			Recommendation:  "WATCH — revisit after next traction milestone",
			FundingStage:    "Pre-seed",
			SuggestedAmount: "$500K-1M",
		},
	}
}
