package email

import (
	"errors"
	"testing"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name  string
		addr  string
		valid bool
	}{
		{name: "plain", addr: "user@example.com", valid: true},
		{name: "plus and dots", addr: "first.last+seo@mail.example.co.in", valid: true},
		{name: "percent", addr: "a%b@example.org", valid: true},
		{name: "empty", addr: "", valid: false},
		{name: "missing at", addr: "user.example.com", valid: false},
		{name: "missing tld", addr: "user@example", valid: false},
		{name: "short tld", addr: "user@example.c", valid: false},
		{name: "space", addr: "user name@example.com", valid: false},
		{name: "numeric tld", addr: "user@example.c0m", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.addr)
			if tt.valid {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var stdErr *domain.StandardError
			require.True(t, errors.As(err, &stdErr))
			assert.Equal(t, domain.ErrCodeInvalidEmail, stdErr.Code)
			assert.Equal(t, "Invalid Email Address", stdErr.Message)
			assert.Equal(t, "Please enter a valid email address.", stdErr.Details)
			assert.False(t, stdErr.Retryable)
		})
	}
}
