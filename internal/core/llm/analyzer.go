// Package llm turns a pitch-deck prompt into a structured investment analysis
// via Gemini, with a demo-mode bypass for keyless evaluation.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ananyajain10/pitchparse-ai/internal/models"
)

// systemInstruction is the fixed analyst persona sent with every request. The
// model is told to answer with the exact PitchAnalysis JSON schema.
const systemInstruction = `
You are VentureMind — an AI-powered venture capital assistant trained to evaluate startup pitch decks with expert precision. You reason like a top VC analyst with 15+ years of experience. Your job is to extract factual data from the pitch deck and provide deep, strategic analysis with business mindset.

RULES:

1. **EXTRACTION**:
   - Extract *only what is clearly mentioned* in the pitch (e.g., names, backgrounds, product).
   - Do **not fabricate** or hallucinate missing details.
   - If something is missing, call it out clearly in your "assessment" fields.

2. **RESEARCH + ANALYSIS**:
   - Perform deep analysis for market size, AI vertical relevance, and VC investability.
   - Use industry expertise, logical assumptions, and strategic thinking.
   - Focus especially on the **AI market connection**, real-world AI applicability, and funding readiness.

3. **FORMAT STRICTLY IN JSON** (no extra comments or markdown):
### Example response:

{
  "founderAnalysis": {
    "names": ["Alice", "Bob"],
    "background": "Alice is a former Google PM with 10 years in AI. Bob is an ex-YC founder.",
    "credibility": 9,
    "assessment": "Excellent founding team with domain experience."
  },
  "marketSize": {
    "tam": "$50B",
    "sam": "$8B",
    "som": "$500M",
    "growth": "28% CAGR",
    "assessment": "Massive and fast-growing market."
  },
  "aiVertical": {
    "connection": "Directly applies vertical AI for clinical decision support.",
    "strength": 8,
    "opportunities": ["Medical diagnosis", "Hospital automation"],
    "assessment": "High relevance and defensibility in AI."
  },
  "vcAnalysis": {
    "pros": ["Strong team", "Proprietary data", "Large market"],
    "cons": ["Regulatory hurdles", "Burn rate concerns"],
    "rating": 8,
    "recommendation": "INVEST — High potential, watch CAC",
    "fundingStage": "Seed",
    "suggestedAmount": "$1-2M"
  }
}`

// ErrAnalysisParse means the model's reply could not be parsed into the
// analysis schema.
var ErrAnalysisParse = errors.New("failed to parse analysis response")

// Generator produces a raw model reply for a system + user prompt pair.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Analyzer runs pitch-deck analysis against a Generator.
type Analyzer struct {
	gen Generator
}

func NewAnalyzer(gen Generator) *Analyzer {
	return &Analyzer{gen: gen}
}

// Analyze submits the prompt under the VentureMind instruction and parses the
// structured reply.
func (a *Analyzer) Analyze(ctx context.Context, prompt string) (*models.PitchAnalysis, error) {
	raw, err := a.gen.Generate(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("analysis request: %w", err)
	}
	return ParseAnalysis(raw)
}

// ParseAnalysis locates the first '{' in the raw reply and parses from there,
// tolerating any leading non-JSON preamble the model emits.
func ParseAnalysis(raw string) (*models.PitchAnalysis, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrAnalysisParse)
	}
	var out models.PitchAnalysis
	dec := json.NewDecoder(strings.NewReader(raw[start:]))
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisParse, err)
	}
	return &out, nil
}

// AnalyzePitch runs one analysis call with the supplied key, mirroring a
// per-session client: the key can change between requests, so the Gemini
// client is built per call. Demo keys bypass the remote service entirely.
func AnalyzePitch(ctx context.Context, apiKey, modelName, prompt string) (*models.PitchAnalysis, error) {
	if IsDemoKey(apiKey) {
		return DemoAnalysis(), nil
	}
	gem, err := NewGeminiLLM(ctx, apiKey, modelName)
	if err != nil {
		return nil, fmt.Errorf("initializing gemini client: %w", err)
	}
	defer gem.Close()
	return NewAnalyzer(gem).Analyze(ctx, prompt)
}
