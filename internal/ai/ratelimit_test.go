package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRateLimitedStatusCode(t *testing.T) {
	limited, retry := IsRateLimited(&APIError{StatusCode: 429, Message: "slow down"})
	assert.True(t, limited)
	assert.Equal(t, 60, retry)
}

func TestIsRateLimitedRetryHint(t *testing.T) {
	err := &APIError{StatusCode: 429, Message: "Rate limit reached. Please retry in 12.5 seconds."}
	limited, retry := IsRateLimited(err)
	assert.True(t, limited)
	assert.Equal(t, 13, retry)
}

func TestIsRateLimitedMessageSubstrings(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"quota", errors.New("insufficient quota for this key"), true},
		{"too many requests", errors.New("Too Many Requests"), true},
		{"rate", errors.New("request was rate limited"), true},
		{"429 in text", errors.New("upstream returned 429"), true},
		{"timeout", errors.New("context deadline exceeded"), false},
		{"server error", &APIError{StatusCode: 500, Message: "internal"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limited, _ := IsRateLimited(tt.err)
			assert.Equal(t, tt.want, limited)
		})
	}
}

func TestRetryAfterSecondsParsing(t *testing.T) {
	tests := []struct {
		msg  string
		want int
	}{
		{"please retry in 30 seconds", 30},
		{"Retry In 2.1s", 3},
		{"retry in 0.4 seconds", 1},
		{"no hint here", 60},
		{"retry in soon", 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, retryAfterSeconds(tt.msg), "msg %q", tt.msg)
	}
}

func TestIsRateLimitedNil(t *testing.T) {
	limited, retry := IsRateLimited(nil)
	assert.False(t, limited)
	assert.Zero(t, retry)
}
