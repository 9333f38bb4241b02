package generateadvice

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "advice-service/internal/common/errors"
	"advice-service/internal/common/gemini"
	"advice-service/internal/common/logger"
	"advice-service/internal/common/validation"
	"advice-service/internal/models"
)

func createAssessment() *models.SkillAssessment {
	return &models.SkillAssessment{
		Scores: models.Scores{
			PatternRecognition: 2,
			Prediction:         5,
			ReactionSpeed:      8,
			MultiLayerReading:  9,
			DiversityOfOptions: 0,
			MentalResilience:   10,
		},
		AdviceLevel: models.AdviceLevelHighLevel,
		PlayerRank:  models.RankDiamond,
	}
}

func createTestService(t *testing.T, inv Invoker) *Service {
	t.Helper()
	return NewService(ServiceDependencies{Invoker: inv, Logger: logger.NewTestLogger(t)}, DefaultConfig())
}

func TestService_Execute(t *testing.T) {
	inv := okInvoker("[Strengths]\nSolid defence.\n\n[Growth Areas]\nMix it up.\n\n[Practice Plan]\nLab time.")
	svc := createTestService(t, inv)

	out, err := svc.Execute(context.Background(), createAssessment())

	require.NoError(t, err)
	assert.Equal(t, "[Strengths]\nSolid defence.\n\n[Growth Areas]\nMix it up.\n\n[Practice Plan]\nLab time.", out.Advice)

	inv.AssertExpectations(t)
	inv.AssertNumberOfCalls(t, "Invoke", 1)
	text := inv.prompt(0)
	assert.Contains(t, text, "current rank is Diamond")
	assert.Contains(t, text, "Pattern Recognition: 2/10 (novice)")
	assert.Contains(t, text, "Mental Resilience: 10/10 (expert)")
	assert.NotContains(t, text, "The player added the following note")
}

func TestService_ExecuteOutputMatchesSchema(t *testing.T) {
	svc := createTestService(t, okInvoker("advice"))

	out, err := svc.Execute(context.Background(), createAssessment())
	require.NoError(t, err)

	result, err := validation.ValidateInput(map[string]interface{}{"advice": out.Advice}, GetOutputSchema())
	require.NoError(t, err)
	assert.True(t, result.Valid, result.GetErrorMessages())
}

func TestService_NotReadyWithoutInvoker(t *testing.T) {
	svc := createTestService(t, nil)

	assert.False(t, svc.Ready())

	_, err := svc.Execute(context.Background(), createAssessment())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConfiguration))
}

func TestService_ExecuteErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(a *models.SkillAssessment)
		invoker  *MockInvoker
		wantCode apperrors.ErrorCode
	}{
		{
			name:     "score out of range",
			mutate:   func(a *models.SkillAssessment) { a.Scores.Prediction = 11 },
			invoker:  okInvoker("advice"),
			wantCode: apperrors.ErrCodeInvalidScore,
		},
		{
			name:     "unknown rank",
			mutate:   func(a *models.SkillAssessment) { a.PlayerRank = "Legend" },
			invoker:  okInvoker("advice"),
			wantCode: apperrors.ErrCodeUnknownRankTier,
		},
		{
			name:     "empty text part",
			invoker:  respondingInvoker(&gemini.RawResponse{StatusCode: http.StatusOK, Body: []byte(createGeminiBody(""))}),
			wantCode: apperrors.ErrCodeMalformedUpstream,
		},
		{
			name:     "upstream fatal",
			invoker:  failingInvoker(apperrors.NewUpstreamFatalStatusError(http.StatusServiceUnavailable, "")),
			wantCode: apperrors.ErrCodeUpstreamFatalStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assessment := createAssessment()
			if tt.mutate != nil {
				tt.mutate(assessment)
			}
			svc := createTestService(t, tt.invoker)

			out, err := svc.Execute(context.Background(), assessment)

			assert.Nil(t, out)
			assert.True(t, apperrors.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestService_InvalidInputNeverReachesUpstream(t *testing.T) {
	inv := okInvoker("advice")
	svc := createTestService(t, inv)
	assessment := createAssessment()
	assessment.Scores.ReactionSpeed = -3

	_, err := svc.Execute(context.Background(), assessment)

	require.Error(t, err)
	inv.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestGetInputSchema(t *testing.T) {
	schema := GetInputSchema()

	result, err := validation.ValidateJSON([]byte(validBody), schema)
	require.NoError(t, err)
	assert.True(t, result.Valid, result.GetErrorMessages())

	result, err = validation.ValidateJSON([]byte(`{"scores":{},"playerRank":""}`), schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("scores.prediction"))
	assert.True(t, result.HasErrors("playerRank"))
}
