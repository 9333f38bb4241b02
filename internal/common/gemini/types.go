// Package gemini talks to the Generative Language generateContent endpoint.
package gemini

// Part is one piece of content. Only text parts are produced or consumed here.
type Part struct {
	Text *string `json:"text,omitempty"`
}

// Content is a role-tagged list of parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerateContentRequest is the request body of generateContent.
type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

// Candidate is one generated answer.
type Candidate struct {
	Content      *Content `json:"content"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// GenerateContentResponse is the subset of the response body the service reads.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// RawResponse is a successful (2xx) upstream reply, not yet validated.
type RawResponse struct {
	StatusCode int
	Body       []byte
	Attempts   int
}

// NewUserRequest wraps text as a single user turn.
func NewUserRequest(text string) GenerateContentRequest {
	return GenerateContentRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: &text}}},
		},
	}
}
