package offers

import "time"

const (
	dateLayout = "2006-01-02"
	hourLayout = "15:04"
)

// ComputeValidTo derives the UTC expiry instant for an offer. When both a
// concrete date and hour are known they are interpreted as local time in loc
// (the timezone of the target institutions) and converted to UTC. Otherwise
// the expiry falls back to now + fallbackDays as a conservative default.
func ComputeValidTo(date *time.Time, hour *string, loc *time.Location, fallbackDays int, now time.Time) time.Time {
	if date != nil && hour != nil && *hour != "" {
		if h, err := time.Parse(hourLayout, *hour); err == nil {
			local := time.Date(
				date.Year(), date.Month(), date.Day(),
				h.Hour(), h.Minute(), 0, 0, loc,
			)
			return local.UTC()
		}
	}
	return now.UTC().AddDate(0, 0, fallbackDays)
}
