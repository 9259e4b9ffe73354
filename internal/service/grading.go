package service

import (
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
)

// Verdict is the result of grading one submitted answer.
type Verdict struct {
	Correct bool
	// AnswerText is what counts as the correct answer for display: the
	// correct choice text for objective questions, the model answer for
	// subjective ones.
	AnswerText string
}

// GradeQuestion compares a submitted answer against the stored one.
//
// Objective: the stored answer is a 1-based index; the submission must
// equal the choice text at that index after trimming. A malformed index
// falls back to choice 1 and is logged, matching the stored-data guard the
// listing screens rely on.
//
// Subjective: trim-exact match against the model answer. No fuzzy matching.
func GradeQuestion(q *model.Question, submitted string) Verdict {
	submitted = strings.TrimSpace(submitted)

	if q.IsObjective() {
		idx, ok := q.AnswerIndex()
		if !ok {
			logger.Log.Warn("objective question has malformed answer index, falling back to choice 1",
				zap.Uint("questionId", q.ID),
				zap.String("answer", q.Answer))
			idx = 1
		}
		correctText := strings.TrimSpace(q.Choices()[idx-1])
		return Verdict{
			Correct:    submitted != "" && submitted == correctText,
			AnswerText: correctText,
		}
	}

	modelAnswer := strings.TrimSpace(q.Answer)
	return Verdict{
		Correct:    submitted != "" && submitted == modelAnswer,
		AnswerText: modelAnswer,
	}
}
