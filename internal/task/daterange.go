package task

import (
	"time"

	"taskbridge/internal/service"
)

// DefaultTimezone is used when the acting user's timezone is unknown.
const DefaultTimezone = "Etc/UTC"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Zone resolves an IANA timezone name, falling back to Etc/UTC when the
// name is empty or unknown.
func Zone(name string) (*time.Location, string) {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc, name
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc, DefaultTimezone
	}
	return time.UTC, DefaultTimezone
}

// NewDateRange builds the date attachment for a task from the supplied
// instants, rendered in the given timezone. A lone start or a lone end both
// produce a single-instant range: a start bound and no end. Returns nil when
// neither instant is supplied.
func NewDateRange(start, end *time.Time, timezone string) *service.DateRange {
	loc, name := Zone(timezone)

	switch {
	case start != nil && end == nil:
		return &service.DateRange{Start: bound(*start, loc, name)}
	case start != nil && end != nil:
		b := bound(*end, loc, name)
		return &service.DateRange{Start: bound(*start, loc, name), End: &b}
	case start == nil && end != nil:
		// An end without a start is treated as the start.
		return &service.DateRange{Start: bound(*end, loc, name)}
	default:
		return nil
	}
}

func bound(t time.Time, loc *time.Location, name string) service.DateBound {
	local := t.In(loc)
	return service.DateBound{
		Date:     local.Format(dateLayout),
		Time:     local.Format(timeLayout),
		Timezone: name,
	}
}
