package service

import (
	"arch_quiz_backend/internal/model"
	"testing"
	"time"
)

func TestElapsedSeconds(t *testing.T) {
	issued := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
	session := &QuizSession{
		Questions: []SessionQuestion{
			{Question: model.Question{Text: "q1"}, IssuedAt: issued},
			{Question: model.Question{Text: "q2"}, IssuedAt: issued},
		},
	}

	if got := session.ElapsedSeconds(0, issued.Add(42*time.Second)); got != 42 {
		t.Errorf("ElapsedSeconds = %d, want 42", got)
	}
	if got := session.ElapsedSeconds(1, issued.Add(1500*time.Millisecond)); got != 1 {
		t.Errorf("ElapsedSeconds = %d, want 1 (truncated)", got)
	}

	// clock skew cannot produce negative solve times
	if got := session.ElapsedSeconds(0, issued.Add(-time.Minute)); got != 0 {
		t.Errorf("ElapsedSeconds = %d, want 0 for submission before issuance", got)
	}

	if got := session.ElapsedSeconds(5, issued); got != 0 {
		t.Errorf("ElapsedSeconds = %d, want 0 for an out-of-range index", got)
	}
}
