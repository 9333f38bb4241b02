package generateadvice

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"advice-service/internal/coaching/classifier"
	"advice-service/internal/coaching/knowledge"
	"advice-service/internal/coaching/prompt"
	"advice-service/internal/common/config"
	"advice-service/internal/common/errors"
	"advice-service/internal/common/gemini"
	"advice-service/internal/common/logger"
	"advice-service/internal/common/metrics"
	"advice-service/internal/common/observability"
	"advice-service/internal/common/validation"
	"advice-service/internal/models"
)

const TaskType = "generate-advice"

// Paths the handler answers on. The second keeps existing front ends working.
var Paths = []string{
	"/api/generate-advice",
	"/.netlify/functions/generate-advice",
}

const RequestIDHeader = "X-Request-ID"

const maxScoreMagnitude = 1 << 20

type Handler struct {
	config       *Config
	logger       logger.Logger
	service      *Service
	errorHandler *errors.ErrorHandler
	obs          *observability.Observability
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Logger        logger.Logger
	Observability *observability.Observability
	// Invoker replaces the Gemini invoker built from configuration.
	Invoker Invoker
	// Sleeper replaces the real backoff timer of the built invoker.
	Sleeper gemini.Sleeper
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	var loggerInstance logger.Logger
	if opts.Logger != nil {
		loggerInstance = opts.Logger
	} else {
		loggerInstance = logger.NewStructured("info", "json")
	}
	loggerInstance = loggerInstance.WithFields(map[string]interface{}{"worker": TaskType})

	invoker := opts.Invoker
	if invoker == nil {
		built, err := buildInvoker(workerConfig, opts.Sleeper, loggerInstance)
		if err != nil {
			return nil, err
		}
		if built != nil {
			invoker = built
		}
	}

	h := &Handler{
		config:       workerConfig,
		logger:       loggerInstance,
		errorHandler: errors.NewErrorHandler(loggerInstance),
		obs:          opts.Observability,
	}

	h.service = NewService(ServiceDependencies{
		Classifier: classifier.New(),
		Knowledge:  knowledge.Default(),
		Assembler: prompt.NewAssembler(prompt.Options{
			SectionCharLimit: workerConfig.SectionCharLimit,
			ResponseLanguage: workerConfig.ResponseLanguage,
		}),
		Invoker: invoker,
		Logger:  loggerInstance,
	}, workerConfig)

	if !h.service.Ready() {
		loggerInstance.Warn("Gemini API key not configured; advice requests will fail", nil)
	}

	return h, nil
}

// buildInvoker returns nil, nil when no API key is configured.
func buildInvoker(cfg *Config, sleeper gemini.Sleeper, log logger.Logger) (*gemini.Invoker, error) {
	transport, err := gemini.NewHTTPTransport(gemini.TransportConfig{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
	})
	if stderrors.Is(err, gemini.ErrMissingAPIKey) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create gemini transport: %w", err)
	}

	return gemini.NewInvoker(gemini.InvokerOptions{
		Transport:   transport,
		Sleeper:     sleeper,
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay,
		Logger:      log,
	})
}

// Enabled reports whether the handler should be mounted.
func (h *Handler) Enabled() bool {
	return h.config.Enabled
}

// Ready reports whether an API key is configured.
func (h *Handler) Ready() bool {
	return h.service.Ready()
}

// Routes mounts the advice endpoint on r. Other methods on the same paths get 405.
func (h *Handler) Routes(r chi.Router) {
	for _, path := range Paths {
		r.Post(path, h.ServeHTTP)
	}
	r.MethodNotAllowed(MethodNotAllowed)
}

// MethodNotAllowed answers any non-POST request on a known path.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	errors.WriteJSON(w, http.StatusMethodNotAllowed, errors.ErrorResponse{Message: "Method Not Allowed"})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowed(w, r)
		return
	}

	startTime := time.Now()
	metrics.AdviceRequestsActive.Inc()
	defer metrics.AdviceRequestsActive.Dec()

	requestID := requestIDFrom(r)
	w.Header().Set(RequestIDHeader, requestID)

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	log := logger.ForContext(ctx, h.logger).WithFields(map[string]interface{}{"requestId": requestID})
	log.Info("Processing advice request", map[string]interface{}{
		"remoteAddr": r.RemoteAddr,
		"path":       r.URL.Path,
	})

	input, err := h.parseInput(w, r)
	if err != nil {
		h.fail(ctx, w, requestID, startTime, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, w, requestID, startTime, err)
		return
	}

	errors.WriteJSON(w, http.StatusOK, output)

	level := string(input.AdviceLevel)
	if !prompt.KnownTone(input.AdviceLevel) {
		level = string(models.AdviceLevelDefault)
	}
	metrics.AdviceRequestsCompleted.WithLabelValues(level).Inc()
	metrics.AdviceRequestDuration.WithLabelValues("success").Observe(time.Since(startTime).Seconds())
	h.obs.RecordRequestProcessed(ctx, "success")
	h.obs.RecordRequestDuration(ctx, time.Since(startTime), "success")

	log.Info("Advice request completed", map[string]interface{}{
		"durationMs": time.Since(startTime).Milliseconds(),
	})
}

// Execute runs the pipeline for an already validated assessment.
func (h *Handler) Execute(ctx context.Context, input *models.SkillAssessment) (*Output, error) {
	return h.service.Execute(ctx, input)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, requestID string, startTime time.Time, err error) {
	stdErr := h.errorHandler.HandleRequestError(w, requestID, err)

	metrics.AdviceRequestsFailed.WithLabelValues(string(stdErr.Code)).Inc()
	metrics.AdviceRequestDuration.WithLabelValues("error").Observe(time.Since(startTime).Seconds())
	h.obs.RecordRequestProcessed(ctx, "error")
	h.obs.RecordRequestDuration(ctx, time.Since(startTime), "error")
}

func (h *Handler) parseInput(w http.ResponseWriter, r *http.Request) (*models.SkillAssessment, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes))
	if err != nil {
		return nil, errors.NewInputValidationError(fmt.Sprintf("read body: %v", err))
	}

	result, err := validation.ValidateJSON(body, GetInputSchema())
	if err != nil {
		return nil, errors.NewInputValidationError(fmt.Sprintf("parse body: %v", err))
	}
	if !result.Valid {
		return nil, errors.NewInputValidationError(
			fmt.Sprintf("Validation errors: %v", result.GetErrorMessages()))
	}

	var input Input
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, errors.NewInputValidationError(fmt.Sprintf("decode body: %v", err))
	}

	return toAssessment(&input)
}

// toAssessment maps the wire input onto the domain type. Range checks on
// scores are left to the classifier.
func toAssessment(input *Input) (*models.SkillAssessment, error) {
	for key, value := range input.Scores {
		if !models.Axis(key).Valid() {
			return nil, errors.NewUnknownAxisError(key)
		}
		// Keep the int conversion below well defined.
		if math.Abs(value) > maxScoreMagnitude {
			return nil, errors.NewInvalidScoreError(key, int(math.Copysign(maxScoreMagnitude, value)))
		}
	}

	rank, ok := models.ParseRankTier(input.PlayerRank)
	if !ok {
		return nil, errors.NewUnknownRankTierError(input.PlayerRank)
	}

	score := func(axis models.Axis) int {
		return int(input.Scores[string(axis)])
	}

	return &models.SkillAssessment{
		Scores: models.Scores{
			PatternRecognition: score(models.AxisPatternRecognition),
			Prediction:         score(models.AxisPrediction),
			ReactionSpeed:      score(models.AxisReactionSpeed),
			MultiLayerReading:  score(models.AxisMultiLayerReading),
			DiversityOfOptions: score(models.AxisOptionDiversity),
			MentalResilience:   score(models.AxisMentalResilience),
		},
		AdviceLevel:  models.AdviceLevel(strings.TrimSpace(input.AdviceLevel)),
		PlayerRank:   rank,
		UserFreeText: input.UserFreeText,
	}, nil
}

func requestIDFrom(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(RequestIDHeader)); id != "" && len(id) <= 128 {
		return id
	}
	return uuid.NewString()
}
