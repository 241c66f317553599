// Package clock provides the service's notion of "today". Day keys and
// status timestamps are always taken in one fixed civil timezone, never in
// naive UTC, so a run shortly after midnight local time lands on the right day.
package clock

import (
	"time"

	"github.com/jonesrussell/playlist-pulse/internal/domain"
)

// Clock produces the current date and timestamp in the service timezone.
type Clock interface {
	// Now returns the current time in the service timezone.
	Now() time.Time
	// Today returns the current day key (YYYY-MM-DD) in the service timezone.
	Today() string
}

// Civil is a Clock fixed to one IANA timezone.
type Civil struct {
	loc *time.Location
}

// NewCivil creates a Clock for the given IANA timezone name.
func NewCivil(timezone string) (*Civil, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Civil{loc: loc}, nil
}

// Now returns the current time in the configured timezone.
func (c *Civil) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the current day key in the configured timezone.
func (c *Civil) Today() string {
	return c.Now().Format(domain.DayKeyFormat)
}
