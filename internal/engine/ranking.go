package engine

import (
	"sort"
	"time"
)

// AssignmentStatus is the list label for one test record.
type AssignmentStatus string

const (
	StatusUrgent    AssignmentStatus = "urgent"
	StatusAvailable AssignmentStatus = "available"
	StatusExpired   AssignmentStatus = "expired"
)

// AssignmentRecord is one row of a learner's assignment list.
type AssignmentRecord struct {
	LectureID         uint             `json:"lecture_id"`
	LectureName       string           `json:"lecture_name"`
	Deadline          *string          `json:"deadline,omitempty"`
	DeadlineAt        *time.Time       `json:"-"`
	DeadlinePassed    bool             `json:"deadline_passed"`
	HoursRemaining    *float64         `json:"hours_remaining,omitempty"`
	Urgent            bool             `json:"is_urgent"`
	UsedAttempts      int              `json:"used_attempts"`
	MaxAttempts       int              `json:"max_attempts"`
	RemainingAttempts int              `json:"remaining_attempts"`
	HasAttempts       bool             `json:"has_attempts"`
	BestScoreRounded  *int             `json:"best_score_percent,omitempty"`
	Status            AssignmentStatus `json:"status"`
}

// Expired reports whether the record is blocked for new attempts: the
// deadline passed or no attempts remain.
func (r AssignmentRecord) Expired() bool {
	return r.DeadlinePassed || r.RemainingAttempts == 0
}

// StatusOf labels a record. Expired always overrides Urgent.
func StatusOf(r AssignmentRecord) AssignmentStatus {
	switch {
	case r.Expired():
		return StatusExpired
	case r.Urgent:
		return StatusUrgent
	default:
		return StatusAvailable
	}
}

// RankAssignments orders records most-urgent first: actionable tests by
// ascending deadline (no deadline last), then expired ones by descending
// deadline (most recently expired first, no deadline last). The sort is
// stable, so ranking an already-ranked list is a no-op.
func RankAssignments(records []AssignmentRecord) []AssignmentRecord {
	ranked := make([]AssignmentRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if a.Expired() != b.Expired() {
			return !a.Expired()
		}

		switch {
		case a.DeadlineAt == nil && b.DeadlineAt == nil:
			return false
		case a.DeadlineAt == nil:
			return false
		case b.DeadlineAt == nil:
			return true
		}

		if a.Expired() {
			return a.DeadlineAt.After(*b.DeadlineAt)
		}
		return a.DeadlineAt.Before(*b.DeadlineAt)
	})

	for i := range ranked {
		ranked[i].Status = StatusOf(ranked[i])
	}
	return ranked
}
