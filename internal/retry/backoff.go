package retry

import "time"

// maxShift keeps base<<attempt from overflowing for large attempt counts.
const maxShift = 16

// ExponentialBackoff returns base * 2^attempt. Negative attempts count as 0.
func ExponentialBackoff(attempt int, base time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > maxShift {
		attempt = maxShift
	}
	return base * (1 << attempt)
}

// CappedBackoff is ExponentialBackoff limited to limit.
func CappedBackoff(attempt int, base, limit time.Duration) time.Duration {
	if d := ExponentialBackoff(attempt, base); d < limit {
		return d
	}
	return limit
}
