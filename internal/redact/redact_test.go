package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"query parameter",
			"https://graph.facebook.com/v20.0/me?access_token=EAAB123xyz&fields=id",
			"https://graph.facebook.com/v20.0/me?access_token=REDACTED&fields=id",
		},
		{
			"trailing parameter",
			"request failed: GET /feed?limit=10&access_token=EAAB123xyz",
			"request failed: GET /feed?limit=10&access_token=REDACTED",
		},
		{
			"token followed by whitespace",
			"bad access_token=EAAB123xyz in request",
			"bad access_token=REDACTED in request",
		},
		{
			"multiple tokens",
			"access_token=first access_token=second",
			"access_token=REDACTED access_token=REDACTED",
		},
		{
			"no token present",
			"plain error message",
			"plain error message",
		},
		{
			"empty string",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokens(tt.in))
		})
	}
}
