package models

import (
	"time"
)

// JobState is the lifecycle state of one tracked extraction attempt.
type JobState string

const (
	JobPending    JobState = "pending"
	JobProcessing JobState = "processing"
	JobDone       JobState = "done"
	JobFailed     JobState = "failed"
)

// DemoKeyMarker activates demo mode when it appears anywhere in the API key.
const DemoKeyMarker = "dummy"

// UploadJob tracks one uploaded file through the extraction pipeline.
// Jobs are owned by the batch orchestrator and mutated only under its lock.
type UploadJob struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"`
	ContentType   string    `json:"content_type"`
	ByteSize      int64     `json:"byte_size"`
	State         JobState  `json:"state"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PitchAnalysis is the structured investment analysis returned by the model.
// The field shapes are fixed; the model is instructed to reply with exactly
// this JSON schema.
type PitchAnalysis struct {
	FounderAnalysis FounderAnalysis `json:"founderAnalysis"`
	MarketSize      MarketSize      `json:"marketSize"`
	AIVertical      AIVertical      `json:"aiVertical"`
	VCAnalysis      VCAnalysis      `json:"vcAnalysis"`
}

// FounderAnalysis covers the founding team.
type FounderAnalysis struct {
	Names       []string `json:"names"`
	Background  string   `json:"background"`
	Credibility int      `json:"credibility"`
	Assessment  string   `json:"assessment"`
}

// MarketSize covers TAM/SAM/SOM sizing and growth.
type MarketSize struct {
	TAM        string `json:"tam"`
	SAM        string `json:"sam"`
	SOM        string `json:"som"`
	Growth     string `json:"growth"`
	Assessment string `json:"assessment"`
}

// AIVertical covers how the pitch connects to the AI market.
type AIVertical struct {
	Connection    string   `json:"connection"`
	Strength      int      `json:"strength"`
	Opportunities []string `json:"opportunities"`
	Assessment    string   `json:"assessment"`
}

// VCAnalysis is the investment recommendation.
type VCAnalysis struct {
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
	Rating          int      `json:"rating"`
	Recommendation  string   `json:"recommendation"`
	FundingStage    string   `json:"fundingStage"`
	SuggestedAmount string   `json:"suggestedAmount"`
}
