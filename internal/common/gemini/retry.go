package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = 1000 * time.Millisecond
)

// State is a node of the retry state machine.
type State int

const (
	StateAttempting State = iota
	StateRateLimited
	StateTransientFailure
	StateSuccess
	StateExhausted
	StateFatalStatus
)

func (s State) String() string {
	switch s {
	case StateAttempting:
		return "attempting"
	case StateRateLimited:
		return "rate_limited"
	case StateTransientFailure:
		return "transient_failure"
	case StateSuccess:
		return "success"
	case StateExhausted:
		return "exhausted"
	case StateFatalStatus:
		return "fatal_status"
	}
	return "unknown"
}

// Terminal reports whether no further attempt follows s.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateExhausted || s == StateFatalStatus
}

// Outcome is what one attempt produced: a status code or a network error.
type Outcome struct {
	StatusCode int
	Err        error
}

// RetryMachine tracks attempts for one invocation. It is not safe for concurrent use.
//
//	Attempting(n) --2xx--------------------------> Success
//	Attempting(n) --non-2xx, non-429-------------> FatalStatus
//	Attempting(n) --429, n < max-1---------------> RateLimited --wait--> Attempting(n+1)
//	Attempting(n) --network error, n < max-1-----> TransientFailure --wait--> Attempting(n+1)
//	Attempting(n) --429 or network error, last---> Exhausted
type RetryMachine struct {
	state       State
	attempt     int
	maxAttempts int
	baseDelay   time.Duration
	lastErr     error
	lastStatus  int
}

func NewRetryMachine(maxAttempts int, baseDelay time.Duration) *RetryMachine {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryMachine{
		state:       StateAttempting,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

func (m *RetryMachine) State() State { return m.state }

// Attempt is the zero-based index of the current attempt.
func (m *RetryMachine) Attempt() int { return m.attempt }

// Attempts is the number of attempts made so far.
func (m *RetryMachine) Attempts() int {
	if m.state == StateAttempting {
		return m.attempt
	}
	return m.attempt + 1
}

func (m *RetryMachine) LastError() error { return m.lastErr }

func (m *RetryMachine) LastStatus() int { return m.lastStatus }

// Backoff is baseDelay * 2^n.
func Backoff(baseDelay time.Duration, n int) time.Duration {
	return baseDelay * time.Duration(1<<uint(n))
}

// Observe records the outcome of the current attempt and returns the wait
// before the next one. The wait is zero for terminal states.
func (m *RetryMachine) Observe(o Outcome) time.Duration {
	if m.state != StateAttempting {
		panic(fmt.Sprintf("gemini: Observe called in state %s", m.state))
	}

	m.lastErr = o.Err
	m.lastStatus = o.StatusCode
	hasBudget := m.attempt < m.maxAttempts-1

	switch {
	case o.Err != nil && hasBudget:
		m.state = StateTransientFailure
	case o.Err != nil:
		m.state = StateExhausted
	case o.StatusCode == http.StatusTooManyRequests && hasBudget:
		m.state = StateRateLimited
	case o.StatusCode == http.StatusTooManyRequests:
		m.state = StateExhausted
	case o.StatusCode >= 200 && o.StatusCode < 300:
		m.state = StateSuccess
	default:
		m.state = StateFatalStatus
	}

	if m.state == StateRateLimited || m.state == StateTransientFailure {
		return Backoff(m.baseDelay, m.attempt)
	}
	return 0
}

// Advance moves a waiting machine to the next attempt.
func (m *RetryMachine) Advance() {
	if m.state != StateRateLimited && m.state != StateTransientFailure {
		panic(fmt.Sprintf("gemini: Advance called in state %s", m.state))
	}
	m.attempt++
	m.state = StateAttempting
}

// Sleeper waits between attempts.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper waits on a real timer and returns early when ctx is done.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
