package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cityreport/internal/client/api"
	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

var (
	ErrNotLoggedIn = errors.New("not logged in; use 'login' or 'register'")
	ErrForbidden   = errors.New("not allowed for your role")
	ErrUsage       = errors.New("usage")
)

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// UserMessage turns an error into the line shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return "Server unavailable, try again later."
	case errors.Is(err, models.ErrValidation):
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return "Invalid " + ve.Field + ": " + ve.Message
		}
	case errors.Is(err, ErrUsage):
		return "Usage" + strings.TrimPrefix(err.Error(), "usage")
	}
	return "Error: " + err.Error()
}
