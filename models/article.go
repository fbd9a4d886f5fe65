package models

import "time"

// Article is a locally tracked ServiceNow knowledge-base article. BodyHTML is
// nil until the first assessment or rewrite fetches the full record; the sync
// job only ever sees summaries.
type Article struct {
	ID               int64     `json:"id"`
	KBNumber         string    `json:"kb_number"`
	ShortDescription string    `json:"short_description"`
	BodyHTML         *string   `json:"body_html,omitempty"`
	SysUpdatedOn     string    `json:"sys_updated_on"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// KBSummary is one row from the ServiceNow table API list endpoint.
type KBSummary struct {
	Number           string `json:"number"`
	ShortDescription string `json:"short_description"`
	SysUpdatedOn     string `json:"sys_updated_on"`
}

// KBRecord is a full article record including the configured body field.
type KBRecord struct {
	Number           string
	ShortDescription string
	SysUpdatedOn     string
	Body             string
}

// ArticleListItem is an article row decorated with the state of its
// assessments for the listing endpoint. LastStatus reflects the newest
// assessment by id while VerdictCurrent reflects the newest completed one,
// so the two can disagree while a fresh assessment is still running.
type ArticleListItem struct {
	ID               int64      `json:"id"`
	KBNumber         string     `json:"kb_number"`
	ShortDescription string     `json:"short_description"`
	SysUpdatedOn     string     `json:"sys_updated_on"`
	LastAssessedAt   *time.Time `json:"last_assessed_at"`
	LastStatus       *string    `json:"last_status"`
	VerdictCurrent   *bool      `json:"verdict_current"`
}
