package engine

import (
	"math"
	"time"
)

// AttemptRecord is the engine's read-only view of one recorded attempt.
type AttemptRecord struct {
	ID             uint
	Score          float64
	TotalQuestions int
	CompletedAt    time.Time
}

// Ledger summarizes a learner's attempts for one test against the configured
// cap. Best scores are exposed in both precisions callers need: one decimal
// for detail views and nearest integer for lists.
type Ledger struct {
	MaxAttempts       int
	UsedAttempts      int
	RemainingAttempts int
	HasAttempts       bool
	BestScorePercent  *float64 // one decimal; nil with zero attempts
	BestScoreRounded  *int     // nearest integer; nil with zero attempts
}

// BuildLedger computes attempt usage and best score. maxAttempts below 1 is
// lifted to 1, matching the stored default. Attempts with zero questions
// count toward usage but are excluded from percentages.
func BuildLedger(maxAttempts int, attempts []AttemptRecord) Ledger {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	l := Ledger{
		MaxAttempts:  maxAttempts,
		UsedAttempts: len(attempts),
		HasAttempts:  len(attempts) > 0,
	}
	l.RemainingAttempts = maxAttempts - l.UsedAttempts
	if l.RemainingAttempts < 0 {
		l.RemainingAttempts = 0
	}

	best := -1.0
	for _, a := range attempts {
		if a.TotalQuestions <= 0 {
			continue
		}
		pct := a.Score / float64(a.TotalQuestions) * 100
		if pct > best {
			best = pct
		}
	}
	if best >= 0 {
		detail := math.Round(best*10) / 10
		rounded := int(math.Round(best))
		l.BestScorePercent = &detail
		l.BestScoreRounded = &rounded
	}
	return l
}

// CanAttempt is the single cannot-attempt predicate inverted: a new attempt
// is allowed only while attempts remain and the deadline has not passed.
func (l Ledger) CanAttempt(deadlinePassed bool) bool {
	return l.RemainingAttempts > 0 && !deadlinePassed
}
