package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "advice-service/internal/common/errors"
	"advice-service/internal/common/logger"
	"advice-service/internal/common/metrics"
)

const tracerName = "advice-service/gemini"

// maxLoggedBody caps upstream error bodies copied into logs.
const maxLoggedBody = 512

// Invoker sends one prompt with bounded retry.
type Invoker struct {
	transport   Transport
	sleeper     Sleeper
	maxAttempts int
	baseDelay   time.Duration
	logger      logger.Logger
	tracer      trace.Tracer
}

// InvokerOptions configures NewInvoker. Zero values take the defaults.
type InvokerOptions struct {
	Transport   Transport
	Sleeper     Sleeper
	MaxAttempts int
	BaseDelay   time.Duration
	Logger      logger.Logger
}

func NewInvoker(opts InvokerOptions) (*Invoker, error) {
	if opts.Transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if opts.Sleeper == nil {
		opts.Sleeper = TimerSleeper{}
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}

	return &Invoker{
		transport:   opts.Transport,
		sleeper:     opts.Sleeper,
		maxAttempts: opts.MaxAttempts,
		baseDelay:   opts.BaseDelay,
		logger:      opts.Logger,
		tracer:      otel.Tracer(tracerName),
	}, nil
}

// Invoke submits text and returns the first 2xx response. The request body is
// encoded once and resent unchanged on every attempt.
func (i *Invoker) Invoke(ctx context.Context, text string) (*RawResponse, error) {
	ctx, span := i.tracer.Start(ctx, "gemini.Invoke")
	defer span.End()

	body, err := json.Marshal(NewUserRequest(text))
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("encode request: %w", err))
	}

	log := logger.ForContext(ctx, i.logger)
	m := NewRetryMachine(i.maxAttempts, i.baseDelay)

	for {
		attempt := m.Attempt()
		span.AddEvent("attempt", trace.WithAttributes(attribute.Int("attempt", attempt)))

		resp, sendErr := i.transport.Send(ctx, body)
		if sendErr == nil && resp == nil {
			sendErr = fmt.Errorf("transport returned no response")
		}
		if ctxErr := ctx.Err(); sendErr != nil && ctxErr != nil {
			metrics.UpstreamAttempts.WithLabelValues("cancelled").Inc()
			span.SetStatus(codes.Error, "cancelled")
			log.Warn("Upstream call cancelled", map[string]interface{}{
				"attempt": attempt + 1,
				"error":   ctxErr.Error(),
			})
			return nil, apperrors.NewRetriesExhaustedError(attempt+1, ctxErr)
		}

		outcome := Outcome{Err: sendErr}
		if sendErr == nil {
			outcome.StatusCode = resp.StatusCode
		}
		wait := m.Observe(outcome)
		metrics.UpstreamAttempts.WithLabelValues(m.State().String()).Inc()

		switch m.State() {
		case StateSuccess:
			span.SetAttributes(attribute.Int("attempts", m.Attempts()))
			log.Debug("Upstream call succeeded", map[string]interface{}{
				"attempts": m.Attempts(),
				"status":   resp.StatusCode,
			})
			return &RawResponse{StatusCode: resp.StatusCode, Body: resp.Body, Attempts: m.Attempts()}, nil

		case StateFatalStatus:
			span.SetStatus(codes.Error, "status "+strconv.Itoa(resp.StatusCode))
			snippet := truncate(string(resp.Body), maxLoggedBody)
			log.Error("Upstream returned non-retryable status", map[string]interface{}{
				"attempt": attempt + 1,
				"status":  resp.StatusCode,
				"body":    snippet,
			})
			return nil, apperrors.NewUpstreamFatalStatusError(resp.StatusCode, snippet)

		case StateExhausted:
			span.SetStatus(codes.Error, "retries exhausted")
			fields := map[string]interface{}{
				"attempts":   m.Attempts(),
				"lastStatus": m.LastStatus(),
			}
			if m.LastError() != nil {
				fields["error"] = m.LastError().Error()
			}
			log.Error("Upstream retries exhausted", fields)
			return nil, apperrors.NewRetriesExhaustedError(m.Attempts(), exhaustedCause(m)).
				WithMetadata("lastStatus", m.LastStatus())

		case StateRateLimited, StateTransientFailure:
			fields := map[string]interface{}{
				"attempt": attempt + 1,
				"state":   m.State().String(),
				"delayMs": wait.Milliseconds(),
			}
			if sendErr != nil {
				fields["error"] = sendErr.Error()
			}
			log.Warn("Upstream attempt failed, backing off", fields)
			span.AddEvent("backoff", trace.WithAttributes(
				attribute.String("state", m.State().String()),
				attribute.Int64("delay_ms", wait.Milliseconds()),
			))
			metrics.UpstreamBackoff.Observe(wait.Seconds())

			if err := i.sleeper.Sleep(ctx, wait); err != nil {
				span.SetStatus(codes.Error, "cancelled during backoff")
				return nil, apperrors.NewRetriesExhaustedError(m.Attempts(), err)
			}
			m.Advance()
		}
	}
}

func exhaustedCause(m *RetryMachine) error {
	if m.LastError() != nil {
		return m.LastError()
	}
	return fmt.Errorf("last status %d", m.LastStatus())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
