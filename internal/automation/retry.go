package automation

import (
	"context"
	"time"
)

// Policy bounds a retried operation. Attached to operations that interact
// with the image matcher or window re-acquisition; pure input-injection
// primitives are near-instant and never retried.
type Policy struct {
	MaxAttempts       int
	InitialDelay      time.Duration
	BackoffMultiplier float64
	// MaxDelay caps the backoff growth.
	MaxDelay time.Duration
	// Timeout bounds the whole retry loop; zero means attempts-only.
	Timeout time.Duration
}

// DefaultPolicy matches the pacing the target application tolerates:
// a handful of attempts at sub-second spacing.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:       3,
		InitialDelay:      500 * time.Millisecond,
		BackoffMultiplier: 2,
		MaxDelay:          5 * time.Second,
		Timeout:           30 * time.Second,
	}
}

// Op is a retryable operation.
type Op func(ctx context.Context) error

// WithRetry invokes op until it succeeds, the attempt budget is spent, or
// the timeout elapses, whichever comes first. Non-retryable failures
// (injection errors) are returned immediately: re-issuing physical input
// risks duplicate side effects. The returned error on budget exhaustion is
// a KindTimeout Failure wrapping the last attempt's error.
func WithRetry(ctx context.Context, policy Policy, op Op) error {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	var deadline time.Time
	if policy.Timeout > 0 {
		deadline = time.Now().Add(policy.Timeout)
	}

	delay := policy.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Timeout(err, "cancelled before attempt %d", attempt)
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !Retryable(lastErr) {
			return lastErr
		}
		if attempt == policy.MaxAttempts {
			break
		}
		if !deadline.IsZero() && time.Now().Add(delay).After(deadline) {
			return Timeout(lastErr, "retry timeout after %d attempts", attempt)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return Timeout(ctx.Err(), "cancelled while waiting to retry")
		}

		delay = time.Duration(float64(delay) * policy.BackoffMultiplier)
		if policy.MaxDelay > 0 && delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}

	return Timeout(lastErr, "failed after %d attempts", policy.MaxAttempts)
}

// RetryWithDiagnostic runs op under policy and, on final failure, attaches
// a full-window diagnostic screenshot to the returned Failure. Screenshot
// capture errors are logged and swallowed: the original failure is always
// what the caller sees.
func (e *Engine) RetryWithDiagnostic(ctx context.Context, policy Policy, op Op) error {
	err := WithRetry(ctx, policy, op)
	if err == nil {
		return nil
	}
	path, capErr := e.SaveDiagnostic(0, 0, "")
	if capErr != nil {
		e.log.Warn("could not capture diagnostic screenshot", "error", capErr)
		return err
	}
	return AttachScreenshot(err, path)
}
