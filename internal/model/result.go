package model

import "time"

// Verdict is a detector's opinion about a single posting.
type Verdict string

const (
	VerdictActive  Verdict = "active"
	VerdictExpired Verdict = "expired"
	VerdictUnknown Verdict = "unknown"
)

// Decision is the final call for a link: keep it or delete it.
type Decision string

const (
	DecisionKeep   Decision = "KEEP"
	DecisionDelete Decision = "DELETE"
)

// CandidateLink is one job-posting URL handed in by the storage collaborator.
type CandidateLink struct {
	URL   string `json:"url"`
	JobID string `json:"job_id"`
}

// LinkCheckResult is the sole output of the classification pipeline.
// FinalURL is the URL actually evaluated after wrapper resolution, and
// DetectorUsed names the tier or vendor that produced the verdict so that
// detector drift shows up in the audit trail.
type LinkCheckResult struct {
	FinalURL     string   `json:"final_url"`
	Decision     Decision `json:"decision"`
	Reason       string   `json:"reason"`
	DetectorUsed string   `json:"detector_used"`
}

// DecisionFor maps a detector verdict onto a final decision. Anything that
// is not a confident "expired" stays KEEP.
func DecisionFor(v Verdict) Decision {
	if v == VerdictExpired {
		return DecisionDelete
	}
	return DecisionKeep
}

// ReasonCount pairs a reason string with how often it occurred in a batch.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// BatchSummary aggregates one batch run. It is built while the run is in
// flight and discarded after reporting; nothing here is persisted.
type BatchSummary struct {
	RunID          string         `json:"run_id"`
	Total          int            `json:"total"`
	Decisions      map[string]int `json:"decisions"`
	DetectorsUsed  map[string]int `json:"detectors_used"`
	TopReasons     []ReasonCount  `json:"top_reasons"`
	Elapsed        time.Duration  `json:"elapsed"`
	ElapsedSeconds float64        `json:"elapsed_seconds"`
}

// SourceBreakdown groups a URL list by registrable base domain.
type SourceBreakdown struct {
	Total       int                 `json:"total"`
	Counts      map[string]int      `json:"counts"`
	Percentages map[string]float64  `json:"percentages"`
	Examples    map[string][]string `json:"examples"`
}

// CheckLinkInput is the request body for single-link classification.
type CheckLinkInput struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds" binding:"omitempty,gte=1,lte=300"`
}

// CheckBatchInput is the request body for batch classification.
type CheckBatchInput struct {
	URLs           []string `json:"urls" binding:"required"`
	TimeoutSeconds int      `json:"timeout_seconds" binding:"omitempty,gte=1,lte=300"`
	MaxWorkers     int      `json:"max_workers" binding:"omitempty,gte=1,lte=100"`
}

// SourcesInput is the request body for the source breakdown endpoint.
type SourcesInput struct {
	URLs              []string `json:"urls" binding:"required"`
	ExamplesPerSource int      `json:"examples_per_source" binding:"omitempty,gte=0,lte=25"`
}
