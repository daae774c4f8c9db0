package email

import (
	"regexp"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
)

var addressPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateAddress is the synchronous first phase of a send. An invalid
// address is reported before any dispatch is attempted.
func ValidateAddress(addr string) error {
	if addressPattern.MatchString(addr) {
		return nil
	}
	return domain.NewStandardError(
		domain.ErrCodeInvalidEmail,
		"Invalid Email Address",
		"Please enter a valid email address.",
	)
}
