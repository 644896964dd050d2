package fetcher

import (
	"context"
	"time"

	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/rs/zerolog"
)

// RetryPolicy bounds the attempts made for one target per cycle.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy returns three attempts with a fixed 10s delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: config.DefaultFetcherMaxAttempts,
		Delay:       time.Duration(config.DefaultFetcherRetryDelaySeconds) * time.Second,
	}
}

// RetryPolicyFromConfig builds the policy from fetcher configuration.
func RetryPolicyFromConfig(cfg config.FetcherConfig) RetryPolicy {
	policy := RetryPolicy{MaxAttempts: cfg.MaxAttempts, Delay: cfg.RetryDelay()}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Delay < 0 {
		policy.Delay = 0
	}
	return policy
}

// Outcome is the tagged result of a retried fetch: exactly one of Page and
// Err is set.
type Outcome struct {
	URL      string
	Page     *Page
	Attempts int
	Err      *FetchError
}

// OK reports whether the page was retrieved.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Page != nil
}

// Availability maps the outcome to a target availability.
func (o Outcome) Availability() models.Availability {
	if o.OK() {
		return models.AvailabilityReachable
	}
	return models.AvailabilityUnreachable
}

// RetryingFetcher runs a Fetcher under a RetryPolicy.
type RetryingFetcher struct {
	fetcher Fetcher
	policy  RetryPolicy
	logger  zerolog.Logger
}

// NewRetryingFetcher creates a new RetryingFetcher.
func NewRetryingFetcher(fetcher Fetcher, policy RetryPolicy, logger zerolog.Logger) *RetryingFetcher {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &RetryingFetcher{
		fetcher: fetcher,
		policy:  policy,
		logger:  logger.With().Str("component", "RetryingFetcher").Logger(),
	}
}

// Policy returns the effective retry policy.
func (rf *RetryingFetcher) Policy() RetryPolicy {
	return rf.policy
}

// Fetch tries url up to MaxAttempts times, sleeping Delay between attempts.
// Cancellation of ctx ends the loop early with a failed outcome.
func (rf *RetryingFetcher) Fetch(ctx context.Context, url string) Outcome {
	var lastErr error
	attempts := 0

	for attempt := 1; attempt <= rf.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		attempts = attempt
		page, err := rf.fetcher.Fetch(ctx, url)
		if err == nil {
			if attempt > 1 {
				rf.logger.Info().Str("url", url).Int("attempt", attempt).Msg("Fetch succeeded after retry")
			}
			return Outcome{URL: url, Page: page, Attempts: attempt}
		}
		lastErr = err

		rf.logger.Warn().
			Err(err).
			Str("url", url).
			Int("attempt", attempt).
			Int("max_attempts", rf.policy.MaxAttempts).
			Msg("Fetch attempt failed")

		if attempt == rf.policy.MaxAttempts {
			break
		}
		if err := rf.wait(ctx); err != nil {
			lastErr = err
			break
		}
	}

	return Outcome{
		URL:      url,
		Attempts: attempts,
		Err:      &FetchError{URL: url, Attempts: attempts, Err: lastErr},
	}
}

func (rf *RetryingFetcher) wait(ctx context.Context) error {
	if rf.policy.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(rf.policy.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
