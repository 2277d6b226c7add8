package dto

// LogRequest is the body of an ingest event. Both fields are client-supplied
// free text; nothing parses them.
type LogRequest struct {
	Path      string `json:"path"`
	UserAgent string `json:"user_agent,omitempty"`
}
