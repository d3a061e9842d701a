package engine

import (
	"math"
	"sort"
)

// LectureAttempts groups a learner's attempts for one lecture's test.
type LectureAttempts struct {
	LectureID   uint
	LectureName string
	CourseID    uint
	Attempts    []AttemptRecord
}

// LectureScore is the best attempt of one lecture, as a ratio source.
type LectureScore struct {
	LectureID      uint    `json:"lecture_id"`
	LectureName    string  `json:"lecture_name,omitempty"`
	CourseID       uint    `json:"course_id"`
	Score          float64 `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percent        float64 `json:"percent"`
}

// CourseScore is the question-weighted average over a course's lectures.
type CourseScore struct {
	CourseID uint    `json:"course_id"`
	Percent  float64 `json:"percent"`
}

// ScoreSummary aggregates best scores per lecture, per course, and overall.
type ScoreSummary struct {
	PerLecture []LectureScore `json:"per_lecture"`
	PerCourse  []CourseScore  `json:"per_course"`
	Overall    *float64       `json:"overall,omitempty"`
}

// BestAttempt picks the attempt with the highest score ratio. Attempts with
// zero questions have no defined ratio and are skipped. The second return is
// false when no scoreable attempt exists.
func BestAttempt(attempts []AttemptRecord) (AttemptRecord, bool) {
	best := AttemptRecord{}
	bestRatio := -1.0
	for _, a := range attempts {
		if a.TotalQuestions <= 0 {
			continue
		}
		ratio := a.Score / float64(a.TotalQuestions)
		if ratio > bestRatio {
			bestRatio = ratio
			best = a
		}
	}
	return best, bestRatio >= 0
}

// AggregateScores combines lectures into per-lecture best scores, course
// averages, and a cross-course overall figure. Averages are question
// weighted: sum of best scores over sum of their question counts, so a
// ten-question test outweighs a two-question one. Lectures without attempts
// are excluded, never treated as zero. The result does not depend on the
// order of the input or of attempts within a lecture.
func AggregateScores(lectures []LectureAttempts) ScoreSummary {
	summary := ScoreSummary{}

	type bucket struct {
		score     float64
		questions int
	}
	courseTotals := make(map[uint]*bucket)
	overall := bucket{}

	for _, lec := range lectures {
		best, ok := BestAttempt(lec.Attempts)
		if !ok {
			continue
		}
		percent := best.Score / float64(best.TotalQuestions) * 100
		summary.PerLecture = append(summary.PerLecture, LectureScore{
			LectureID:      lec.LectureID,
			LectureName:    lec.LectureName,
			CourseID:       lec.CourseID,
			Score:          best.Score,
			TotalQuestions: best.TotalQuestions,
			Percent:        round1(percent),
		})

		ct := courseTotals[lec.CourseID]
		if ct == nil {
			ct = &bucket{}
			courseTotals[lec.CourseID] = ct
		}
		ct.score += best.Score
		ct.questions += best.TotalQuestions
		overall.score += best.Score
		overall.questions += best.TotalQuestions
	}

	sort.Slice(summary.PerLecture, func(i, j int) bool {
		return summary.PerLecture[i].LectureID < summary.PerLecture[j].LectureID
	})

	for courseID, ct := range courseTotals {
		summary.PerCourse = append(summary.PerCourse, CourseScore{
			CourseID: courseID,
			Percent:  round1(ct.score / float64(ct.questions) * 100),
		})
	}
	sort.Slice(summary.PerCourse, func(i, j int) bool {
		return summary.PerCourse[i].CourseID < summary.PerCourse[j].CourseID
	})

	if overall.questions > 0 {
		pct := round1(overall.score / float64(overall.questions) * 100)
		summary.Overall = &pct
	}
	return summary
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
