package service

import (
	"arch_quiz_backend/internal/model"
	"regexp"
	"strconv"
	"strings"
)

// Legacy generated-question layout:
//
//	Q: 문제 텍스트
//	A. 선택지 B. 선택지 C. 선택지 D. 선택지
//	정답: B
//	해설: ...
var (
	legacyQuestionRe    = regexp.MustCompile(`Q[:：]\s*(.*)`)
	legacyChoiceRe      = regexp.MustCompile(`(?s)[A-D][.．]\s*(.*?)(?:\s*[A-D][.．]|정답[:：]|해설[:：]|$)`)
	legacyAnswerRe      = regexp.MustCompile(`정답[:：]?\s*([A-D])`)
	legacyExplanationRe = regexp.MustCompile(`해설[:：]?\s*(.*)`)
)

// ParseLegacyProblem extracts a question from the pre-JSON plain-text
// generation format. ok is false when the text lacks a question, a full
// choice set or an answer letter.
func ParseLegacyProblem(text string) (*model.Question, bool) {
	q := &model.Question{Format: model.Objective}

	if m := legacyQuestionRe.FindStringSubmatch(text); m != nil {
		q.Text = strings.TrimSpace(m[1])
	}

	var choices []string
	rest := text
	for len(choices) < 4 {
		m := legacyChoiceRe.FindStringSubmatchIndex(rest)
		if m == nil {
			break
		}
		choices = append(choices, strings.TrimSpace(rest[m[2]:m[3]]))
		// resume at the start of the next marker, not past it
		rest = rest[m[3]:]
	}
	if len(choices) != 4 {
		return nil, false
	}
	q.Choice1, q.Choice2, q.Choice3, q.Choice4 = choices[0], choices[1], choices[2], choices[3]

	m := legacyAnswerRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	q.Answer = strconv.Itoa(int(m[1][0]-'A') + 1)

	if m := legacyExplanationRe.FindStringSubmatch(text); m != nil {
		q.Explanation = model.Explanation{LongForm: strings.TrimSpace(m[1])}
	}

	if q.Text == "" {
		return nil, false
	}
	q.Normalize()
	return q, true
}
