// Package aggregate holds the dashboard's derived computations. Aggregates
// are always recomputed from a fresh store read of the underlying records;
// broadcast event payloads are never an input here.
package aggregate

import (
	"math"
	"sort"

	"studyhub-backend/internal/models"
)

type SubjectProgress struct {
	Subject   string `json:"subject"`
	Sessions  int    `json:"sessions"`
	Completed int    `json:"completed"`
	Progress  int    `json:"progress"` // rounded percent
}

// ProgressPercent computes the subject progress percentage: a completed
// session contributes 1, an incomplete session contributes progress/100,
// and the result is round(100 * sum / count). An empty set is 0.
func ProgressPercent(sessions []models.StudySession) int {
	if len(sessions) == 0 {
		return 0
	}

	var sum float64
	for i := range sessions {
		if sessions[i].Completed() {
			sum += 1
		} else {
			sum += float64(sessions[i].Progress) / 100
		}
	}
	return int(math.Round(100 * sum / float64(len(sessions))))
}

// BySubject groups sessions by subject and computes per-subject progress,
// ordered by subject name for stable responses.
func BySubject(sessions []models.StudySession) []SubjectProgress {
	groups := make(map[string][]models.StudySession)
	for i := range sessions {
		groups[sessions[i].Subject] = append(groups[sessions[i].Subject], sessions[i])
	}

	subjects := make([]string, 0, len(groups))
	for subject := range groups {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	result := make([]SubjectProgress, 0, len(subjects))
	for _, subject := range subjects {
		group := groups[subject]
		completed := 0
		for i := range group {
			if group[i].Completed() {
				completed++
			}
		}
		result = append(result, SubjectProgress{
			Subject:   subject,
			Sessions:  len(group),
			Completed: completed,
			Progress:  ProgressPercent(group),
		})
	}
	return result
}
