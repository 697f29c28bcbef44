package http

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

const timezoneHeader = "X-Timezone"

var errInvalidTimezone = errors.New("invalid timezone")

// Clock returns the current instant. Handlers never call time.Now directly.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now()
}

// resolveToday returns the caller's current calendar day. The zone comes from
// the tz query parameter, then the X-Timezone header, and defaults to UTC.
func resolveToday(c *gin.Context, now Clock) (time.Time, error) {
	name := strings.TrimSpace(c.Query("tz"))
	if name == "" {
		name = strings.TrimSpace(c.GetHeader(timezoneHeader))
	}

	loc := time.UTC
	if name != "" {
		var err error
		loc, err = time.LoadLocation(name)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", errInvalidTimezone, name)
		}
	}

	return domain.CalendarDay(now().In(loc)), nil
}
