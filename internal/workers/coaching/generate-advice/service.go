package generateadvice

import (
	"context"
	"time"

	"advice-service/internal/coaching/classifier"
	"advice-service/internal/coaching/knowledge"
	"advice-service/internal/coaching/prompt"
	"advice-service/internal/common/errors"
	"advice-service/internal/common/gemini"
	"advice-service/internal/common/logger"
	"advice-service/internal/models"
)

type Service struct {
	config     *Config
	logger     logger.Logger
	classifier *classifier.Classifier
	knowledge  *knowledge.Base
	assembler  *prompt.Assembler
	invoker    Invoker
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	s := &Service{
		config:     config,
		logger:     deps.Logger,
		classifier: deps.Classifier,
		knowledge:  deps.Knowledge,
		assembler:  deps.Assembler,
		invoker:    deps.Invoker,
	}
	if s.logger == nil {
		s.logger = logger.NewNoOpLogger()
	}
	if s.classifier == nil {
		s.classifier = classifier.New()
	}
	if s.knowledge == nil {
		s.knowledge = knowledge.Default()
	}
	if s.assembler == nil {
		s.assembler = prompt.NewAssembler(prompt.Options{
			SectionCharLimit: config.SectionCharLimit,
			ResponseLanguage: config.ResponseLanguage,
		})
	}
	return s
}

// Ready reports whether upstream calls can be made.
func (s *Service) Ready() bool {
	return s.invoker != nil
}

// Execute runs classify, lookup, assemble, invoke and extract for one assessment.
func (s *Service) Execute(ctx context.Context, assessment *models.SkillAssessment) (*Output, error) {
	log := logger.ForContext(ctx, s.logger)

	// Step 1: Refuse early when no upstream is configured
	if s.invoker == nil {
		return nil, errors.NewConfigurationError("GEMINI_API_KEY is not set")
	}

	// Step 2: Classify every axis
	classifications, err := s.classifier.ClassifyAll(assessment.Scores)
	if err != nil {
		return nil, err
	}

	// Step 3: Coaching context for the player's rank
	entries, err := s.knowledge.ForRank(assessment.PlayerRank)
	if err != nil {
		return nil, err
	}

	// Step 4: Assemble the prompt
	payload, err := s.assembler.Assemble(*assessment, classifications, entries)
	if err != nil {
		return nil, err
	}

	log.Debug("Prompt assembled", map[string]interface{}{
		"playerRank":   string(assessment.PlayerRank),
		"adviceLevel":  string(assessment.AdviceLevel),
		"hasFreeText":  assessment.UserFreeText != "",
		"promptLength": payload.Len(),
	})

	// Step 5: Call the model with retry
	start := time.Now()
	raw, err := s.invoker.Invoke(ctx, payload.Text())
	if err != nil {
		return nil, errors.AsStandardError(err)
	}

	// Step 6: Validate and extract
	advice, err := gemini.ExtractAdvice(raw)
	if err != nil {
		log.Error("Unexpected upstream response structure", map[string]interface{}{
			"attempts": raw.Attempts,
			"body":     truncate(string(raw.Body), 512),
		})
		return nil, err
	}

	log.Info("Advice generated", map[string]interface{}{
		"attempts":     raw.Attempts,
		"upstreamMs":   time.Since(start).Milliseconds(),
		"adviceLength": len(advice),
	})

	return &Output{Advice: advice}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
