package models

import "time"

// AssessmentStatus is the lifecycle state of a single assessment attempt.
type AssessmentStatus string

const (
	AssessmentStatusQueued  AssessmentStatus = "queued"
	AssessmentStatusRunning AssessmentStatus = "running"
	AssessmentStatusDone    AssessmentStatus = "done"
	AssessmentStatusError   AssessmentStatus = "error"
)

// ManualModel is recorded as the model identifier when an operator marks an
// article current without running the LLM.
const ManualModel = "manual"

// Assessment is one assessment attempt for an article. Timestamps follow the
// status: RequestedAt is always set, StartedAt once running, CompletedAt only
// for the terminal done/error states.
type Assessment struct {
	ID              int64            `json:"id"`
	ArticleID       int64            `json:"article_id"`
	Status          AssessmentStatus `json:"status"`
	RequestedAt     time.Time        `json:"requested_at"`
	StartedAt       *time.Time       `json:"started_at"`
	CompletedAt     *time.Time       `json:"completed_at"`
	LLMModel        string           `json:"llm_model"`
	VerdictCurrent  *bool            `json:"verdict_current"`
	Recommendations []string         `json:"recommendations"`
	Error           *string          `json:"error"`
}

// AssessmentDetails is an assessment joined with its article's number for the
// details endpoint.
type AssessmentDetails struct {
	Assessment

	KBNumber string `json:"kb_number"`
}

// AssessmentResult is the payload returned to the caller after a successful
// assessment run.
type AssessmentResult struct {
	AssessmentID         int64  `json:"assessment_id"`
	Status               string `json:"status"`
	VerdictCurrent       bool   `json:"verdict_current"`
	RecommendationsCount int    `json:"recommendations_count"`
}

// RewriteResult is the payload returned by the rewrite orchestrator. Nothing
// is persisted; the caller decides whether to promote the rewritten body.
type RewriteResult struct {
	Success          bool     `json:"success"`
	RewrittenContent string   `json:"rewritten_content"`
	ChangesMade      []string `json:"changes_made"`
}

// SyncResult summarizes one synchronization run.
type SyncResult struct {
	Fetched  int    `json:"fetched"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Since    string `json:"since,omitempty"`
	Full     bool   `json:"full"`
}

// ProgressStats counts article states over each article's newest assessment.
type ProgressStats struct {
	Queued  int `json:"queued"`
	Running int `json:"running"`
	Done    int `json:"done"`
	Error   int `json:"error"`
}

// Total is the number of articles that have at least one assessment.
func (p ProgressStats) Total() int {
	return p.Queued + p.Running + p.Done + p.Error
}
