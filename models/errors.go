package models

import "errors"

// Sentinel errors shared across services and handlers. Handlers map these to
// HTTP status codes; everything else becomes a 500.
var (
	// ErrInvalidInput rejects a request before any state mutation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrArticleNotFound covers an unknown article id as well as an article
	// whose published body cannot be retrieved upstream.
	ErrArticleNotFound = errors.New("article not found")

	// ErrNoCompletedAssessment means a rewrite was requested for an article
	// with no done assessment to take recommendations from.
	ErrNoCompletedAssessment = errors.New("no completed assessment found for article")

	// ErrUpstreamRequest covers transport failures and non-2xx responses
	// from ServiceNow and the generation endpoint alike.
	ErrUpstreamRequest = errors.New("upstream request failed")

	// ErrModelOutput means the generation response carried no extractable
	// text, or the text never became valid structured JSON even after the
	// single repair round-trip.
	ErrModelOutput = errors.New("malformed model output")
)
