package aggregate

import (
	"testing"

	"studyhub-backend/internal/models"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		progress []int
		want     int
	}{
		{"empty", nil, 0},
		{"single incomplete", []int{50}, 50},
		{"single complete", []int{100}, 100},
		{"half and done", []int{50, 100}, 75},
		{"rounding up", []int{33, 33, 34}, 33},
		{"rounds half up", []int{25, 0}, 13},
		{"all zero", []int{0, 0, 0}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sessions := make([]models.StudySession, len(tc.progress))
			for i, p := range tc.progress {
				sessions[i] = models.StudySession{Progress: p}
			}
			if got := ProgressPercent(sessions); got != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestBySubject(t *testing.T) {
	sessions := []models.StudySession{
		{Subject: "Math", Progress: 100},
		{Subject: "Math", Progress: 50},
		{Subject: "Art", Progress: 0},
	}

	result := BySubject(sessions)
	if len(result) != 2 {
		t.Fatalf("Expected 2 subjects, got %d", len(result))
	}

	// Sorted by subject name.
	if result[0].Subject != "Art" || result[1].Subject != "Math" {
		t.Errorf("Expected [Art, Math], got [%s, %s]", result[0].Subject, result[1].Subject)
	}

	art := result[0]
	if art.Sessions != 1 || art.Completed != 0 || art.Progress != 0 {
		t.Errorf("Unexpected Art group: %+v", art)
	}

	math := result[1]
	if math.Sessions != 2 || math.Completed != 1 || math.Progress != 75 {
		t.Errorf("Unexpected Math group: %+v", math)
	}
}

func TestBySubject_Empty(t *testing.T) {
	result := BySubject(nil)
	if len(result) != 0 {
		t.Errorf("Expected empty result, got %v", result)
	}
}
