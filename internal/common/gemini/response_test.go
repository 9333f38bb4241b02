package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "advice-service/internal/common/errors"
)

func TestExtractAdvice(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      string
		wantError bool
	}{
		{
			name: "single text part",
			body: `{"candidates":[{"content":{"parts":[{"text":"[Strengths]\nGood reactions."}]}}]}`,
			want: "[Strengths]\nGood reactions.",
		},
		{
			name: "returns text verbatim without trimming",
			body: `{"candidates":[{"content":{"parts":[{"text":"  spaced \n"}]}}]}`,
			want: "  spaced \n",
		},
		{
			name: "first text part wins",
			body: `{"candidates":[{"content":{"parts":[{"text":"first"},{"text":"second"}]}},{"content":{"parts":[{"text":"other"}]}}]}`,
			want: "first",
		},
		{
			name: "skips non-text parts",
			body: `{"candidates":[{"content":{"parts":[{"inlineData":{}},{"text":"after"}]}}]}`,
			want: "after",
		},
		{name: "missing candidates", body: `{"promptFeedback":{"blockReason":"SAFETY"}}`, wantError: true},
		{name: "empty candidates", body: `{"candidates":[]}`, wantError: true},
		{name: "missing content", body: `{"candidates":[{"finishReason":"SAFETY"}]}`, wantError: true},
		{name: "empty parts", body: `{"candidates":[{"content":{"parts":[]}}]}`, wantError: true},
		{name: "parts without text", body: `{"candidates":[{"content":{"parts":[{"functionCall":{}}]}}]}`, wantError: true},
		{name: "empty text", body: `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`, wantError: true},
		{name: "not json", body: `<html>oops</html>`, wantError: true},
		{name: "null body", body: `null`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractAdvice(&RawResponse{StatusCode: 200, Body: []byte(tt.body)})
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMalformedUpstream))
				assert.Equal(t, "Failed to get advice from AI (unexpected response).", apperrors.AsStandardError(err).Message)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractAdvice_NilResponse(t *testing.T) {
	_, err := ExtractAdvice(nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMalformedUpstream))
}
