package generateadvice

import (
	"context"

	"advice-service/internal/coaching/classifier"
	"advice-service/internal/coaching/knowledge"
	"advice-service/internal/coaching/prompt"
	"advice-service/internal/common/gemini"
	"advice-service/internal/common/logger"
	"advice-service/internal/models"
)

// Input is the decoded request body before domain validation.
// Scores stay numeric here so that 7.0 is accepted and 7.5 is reported by the schema.
type Input struct {
	Scores       map[string]float64 `json:"scores"`
	AdviceLevel  string             `json:"adviceLevel"`
	PlayerRank   string             `json:"playerRank"`
	UserFreeText string             `json:"userFreeText,omitempty"`
}

type Output = models.AdviceResponse

// Invoker submits an assembled prompt upstream.
type Invoker interface {
	Invoke(ctx context.Context, text string) (*gemini.RawResponse, error)
}

type ServiceDependencies struct {
	Classifier *classifier.Classifier
	Knowledge  *knowledge.Base
	Assembler  *prompt.Assembler
	Invoker    Invoker
	Logger     logger.Logger
}
