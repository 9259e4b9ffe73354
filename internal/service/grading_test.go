package service

import (
	"arch_quiz_backend/internal/model"
	"testing"
)

func gradeTestQuestion() *model.Question {
	return &model.Question{
		Text:    "철근콘크리트에서 철근의 역할은?",
		Choice1: "인장력 부담",
		Choice2: "압축력 부담",
		Choice3: "수밀성 확보",
		Choice4: "단열 성능",
		Answer:  "1",
		Format:  model.Objective,
	}
}

func TestGradeObjective(t *testing.T) {
	q := gradeTestQuestion()

	cases := []struct {
		name      string
		submitted string
		correct   bool
	}{
		{"exact choice text", "인장력 부담", true},
		{"surrounding whitespace trimmed", "  인장력 부담  ", true},
		{"wrong choice", "압축력 부담", false},
		{"empty submission", "", false},
		{"whitespace only", "   ", false},
		{"index instead of text", "1", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := GradeQuestion(q, tc.submitted)
			if v.Correct != tc.correct {
				t.Errorf("Correct = %v, want %v", v.Correct, tc.correct)
			}
			if v.AnswerText != "인장력 부담" {
				t.Errorf("AnswerText = %q, want the correct choice text", v.AnswerText)
			}
		})
	}
}

func TestGradeObjectiveMalformedIndex(t *testing.T) {
	q := gradeTestQuestion()
	q.Answer = "정답아님"

	// a bad index falls back to choice 1 instead of failing the grade
	v := GradeQuestion(q, "인장력 부담")
	if !v.Correct {
		t.Error("fallback to choice 1 did not grade the first choice as correct")
	}
	if v.AnswerText != "인장력 부담" {
		t.Errorf("AnswerText = %q, want fallback choice text", v.AnswerText)
	}
}

func TestGradeSubjective(t *testing.T) {
	q := &model.Question{
		Text:   "습윤 양생의 목적을 쓰시오",
		Answer: " 수분 증발 방지 ",
		Format: model.Subjective,
	}

	cases := []struct {
		name      string
		submitted string
		correct   bool
	}{
		{"trim-exact match", "수분 증발 방지", true},
		{"whitespace around submission", "  수분 증발 방지 ", true},
		{"different phrasing", "수분의 증발을 막는다", false},
		{"empty submission", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := GradeQuestion(q, tc.submitted)
			if v.Correct != tc.correct {
				t.Errorf("Correct = %v, want %v", v.Correct, tc.correct)
			}
			if v.AnswerText != "수분 증발 방지" {
				t.Errorf("AnswerText = %q, want trimmed model answer", v.AnswerText)
			}
		})
	}
}

func TestGradeEmptyAnswerNeverCorrect(t *testing.T) {
	// even a question whose model answer is blank cannot be "matched"
	// by submitting nothing
	q := &model.Question{Text: "문제", Answer: "", Format: model.Subjective}
	if v := GradeQuestion(q, ""); v.Correct {
		t.Error("empty submission graded correct against empty answer")
	}
}
