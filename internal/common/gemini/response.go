package gemini

import (
	"encoding/json"
	"fmt"

	apperrors "advice-service/internal/common/errors"
)

// ExtractAdvice returns the first text part of the first candidate, verbatim.
// Any structural deviation is a malformed-response error; nothing is salvaged.
func ExtractAdvice(raw *RawResponse) (string, error) {
	if raw == nil {
		return "", apperrors.NewMalformedUpstreamError("no response")
	}

	var resp GenerateContentResponse
	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		return "", apperrors.NewMalformedUpstreamError(fmt.Sprintf("decode body: %v", err))
	}

	if len(resp.Candidates) == 0 {
		return "", apperrors.NewMalformedUpstreamError("no candidates")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", apperrors.NewMalformedUpstreamError("candidate has no content")
	}
	if len(content.Parts) == 0 {
		return "", apperrors.NewMalformedUpstreamError("content has no parts")
	}

	for _, part := range content.Parts {
		if part.Text != nil && *part.Text != "" {
			return *part.Text, nil
		}
	}

	return "", apperrors.NewMalformedUpstreamError(
		fmt.Sprintf("no text part (finishReason=%q)", resp.Candidates[0].FinishReason))
}
