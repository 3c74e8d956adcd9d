package llm

import (
	"errors"
	"testing"
)

func TestParseAnalysis(t *testing.T) {
	reply := `Here is the structured analysis you asked for:
{
  "founderAnalysis": {
    "names": ["Alice"],
    "background": "Ex-Google.",
    "credibility": 8,
    "assessment": "Strong."
  },
  "marketSize": {
    "tam": "$10B", "sam": "$2B", "som": "$100M",
    "growth": "15% CAGR", "assessment": "Healthy."
  },
  "aiVertical": {
    "connection": "LLM-powered tooling.",
    "strength": 7,
    "opportunities": ["Automation"],
    "assessment": "Relevant."
  },
  "vcAnalysis": {
    "pros": ["Team"], "cons": ["Moat"],
    "rating": 7,
    "recommendation": "INVEST",
    "fundingStage": "Seed",
    "suggestedAmount": "$1M"
  }
}`

	got, err := ParseAnalysis(reply)
	if err != nil {
		t.Fatalf("ParseAnalysis() error = %v", err)
	}
	if got.FounderAnalysis.Names[0] != "Alice" {
		t.Errorf("Names = %v", got.FounderAnalysis.Names)
	}
	if got.MarketSize.TAM != "$10B" {
		t.Errorf("TAM = %s", got.MarketSize.TAM)
	}
	if got.VCAnalysis.Rating != 7 {
		t.Errorf("Rating = %d", got.VCAnalysis.Rating)
	}
}

func TestParseAnalysisFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no JSON at all", raw: "I cannot analyze this."},
		{name: "broken JSON", raw: `preamble { "founderAnalysis": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnalysis(tt.raw)
			if !errors.Is(err, ErrAnalysisParse) {
				t.Errorf("err = %v, want ErrAnalysisParse", err)
			}
		})
	}
}

func TestIsDemoKey(t *testing.T) {
	if !IsDemoKey("dummy-key-for-demo") {
		t.Error("demo key not recognized")
	}
	if IsDemoKey("AIzaSyRealLookingKey") {
		t.Error("real key mistaken for demo")
	}
}

func TestDemoAnalysisIsComplete(t *testing.T) {
	a := DemoAnalysis()
	if len(a.FounderAnalysis.Names) == 0 ||
		a.MarketSize.TAM == "" ||
		a.AIVertical.Connection == "" ||
		a.VCAnalysis.Recommendation == "" {
		t.Errorf("demo analysis has empty sections: %+v", a)
	}
}
