package ai

import (
	"errors"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

const defaultRetryAfterSeconds = 60

var retryInPattern = regexp.MustCompile(`(?i)retry in (\d+(?:\.\d+)?)`)

// IsRateLimited reports whether an upstream AI error is a rate limit, and if
// so the suggested retry delay in whole seconds. Providers signal this as an
// HTTP 429, or only in the error text (quota / too many requests / rate).
func IsRateLimited(err error) (bool, int) {
	if err == nil {
		return false, 0
	}

	var apiErr *APIError
	limited := errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests

	if !limited {
		msg := strings.ToLower(err.Error())
		limited = strings.Contains(msg, "429") ||
			strings.Contains(msg, "quota") ||
			strings.Contains(msg, "too many requests") ||
			strings.Contains(msg, "rate")
	}

	if !limited {
		return false, 0
	}
	return true, retryAfterSeconds(err.Error())
}

// retryAfterSeconds extracts a "retry in N" hint from the error text.
// Fractional seconds are rounded up; absent or unparsable hints fall back to
// 60 seconds.
func retryAfterSeconds(msg string) int {
	m := retryInPattern.FindStringSubmatch(msg)
	if m == nil {
		return defaultRetryAfterSeconds
	}
	secs, err := strconv.ParseFloat(m[1], 64)
	if err != nil || secs <= 0 {
		return defaultRetryAfterSeconds
	}
	return int(math.Ceil(secs))
}
