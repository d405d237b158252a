package dto

// SummarizeRequest carries the note body to condense. The wire contract
// is fixed: {title, content} in, {summary} out, {error} on failure.
type SummarizeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type SummarizeErrorResponse struct {
	Error string `json:"error"`
}
