package domain

// RankedResult is a single similarity hit for a query.
// It is transient, produced per-query, and never persisted.
type RankedResult struct {
	// Document is the matched corpus document.
	Document Document

	// Score is the cosine similarity in [-1, 1].
	Score float64
}

// DocumentRef identifies a document used in a coverage analysis.
type DocumentRef struct {
	// Title is the document title.
	Title string `json:"title"`

	// Slug identifies the document within the corpus.
	Slug string `json:"slug"`

	// Score is the cosine similarity of the document to the query.
	Score float64 `json:"score"`
}

// CoverageReport is the outcome of a coverage query: the generated
// analysis text plus the ranked references that informed it.
type CoverageReport struct {
	// ID correlates the report in logs and output.
	ID string `json:"id"`

	// Query is the trimmed free-text query that was analysed.
	Query string `json:"query"`

	// Analysis is the text produced by the generative reasoning service.
	// It is empty when the generative call failed; Documents is still
	// populated in that case.
	Analysis string `json:"analysis"`

	// Documents lists the ranked references used as context,
	// best match first.
	Documents []DocumentRef `json:"relevant_documents"`
}
