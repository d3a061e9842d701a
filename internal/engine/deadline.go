package engine

import (
	"fmt"
	"time"
)

// UrgencyWindowHours is the remaining-time threshold below which a test is
// flagged urgent.
const UrgencyWindowHours = 24.0

// Layouts accepted for naive deadlines, i.e. a wall-clock time without a
// zone. A teacher authoring "that date, that time" means local time, so
// naive values are interpreted in the evaluating system's zone and never
// normalized to UTC.
var naiveDeadlineLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// DeadlineInfo is the comparable view of a stored deadline against a fixed
// reference instant.
type DeadlineInfo struct {
	At             *time.Time
	Passed         bool
	HoursRemaining *float64 // nil when there is no deadline or it already passed
	Urgent         bool
}

// ParseDeadline turns a stored deadline string into an instant. Zoned
// representations (RFC 3339, offset or Z) are absolute; naive ones are
// local wall-clock time.
func ParseDeadline(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range naiveDeadlineLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized deadline format %q", raw)
}

// EvaluateDeadline classifies a deadline against now. A nil or empty
// deadline means unlimited time. An unparseable deadline is an error; the
// caller resolves ambiguity to the restrictive state rather than silently
// granting time.
func EvaluateDeadline(raw *string, now time.Time) (DeadlineInfo, error) {
	if raw == nil || *raw == "" {
		return DeadlineInfo{}, nil
	}

	at, err := ParseDeadline(*raw)
	if err != nil {
		return DeadlineInfo{}, err
	}

	info := DeadlineInfo{At: &at, Passed: now.After(at)}
	if !info.Passed {
		hours := at.Sub(now).Hours()
		info.HoursRemaining = &hours
		info.Urgent = hours < UrgencyWindowHours
	}
	return info, nil
}
