package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type QuestionFormat string

const (
	Objective  QuestionFormat = "객관식" // four-choice, answer is an index string
	Subjective QuestionFormat = "주관식" // free text, answer is a model answer
)

// Question source labels, kept verbatim in the store and the results log.
const (
	SourceArchitectExam    = "건축기사 기출문제"
	SourceConstructionExam = "건축시공 기출문제"
	SourceGenerated        = "GPT 생성 문제"
	SourceKeyword          = "GPT 키워드 생성"
	SourceLecture          = "강의자료 기반"
)

// Explanation is stored as a JSON column. Legacy rows hold a bare string;
// Scan wraps those into LongForm so readers never parse defensively.
type Explanation struct {
	LongForm      string   `json:"long_form"`
	SummaryPoints []string `json:"summary_points,omitempty"`
}

func (e Explanation) Value() (driver.Value, error) {
	if e.LongForm == "" && len(e.SummaryPoints) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (e *Explanation) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*e = Explanation{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("explanation: unsupported scan type %T", src)
	}

	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		*e = Explanation{}
		return nil
	}
	if strings.HasPrefix(s, "{") {
		return json.Unmarshal([]byte(s), e)
	}
	// plain-text explanation from an old revision
	*e = Explanation{LongForm: s}
	return nil
}

func (e Explanation) Validate() error {
	for _, p := range e.SummaryPoints {
		if strings.TrimSpace(p) == "" {
			return errors.New("explanation: empty summary point")
		}
	}
	if len(e.SummaryPoints) > 0 && e.LongForm == "" {
		return errors.New("explanation: summary points without long-form text")
	}
	return nil
}

func (e Explanation) IsEmpty() bool {
	return e.LongForm == "" && len(e.SummaryPoints) == 0
}

// swagger:model Question
type Question struct {
	BaseModel
	Text        string         `gorm:"type:text;not null" json:"question"`
	Choice1     string         `gorm:"type:text" json:"choice1"`
	Choice2     string         `gorm:"type:text" json:"choice2"`
	Choice3     string         `gorm:"type:text" json:"choice3"`
	Choice4     string         `gorm:"type:text" json:"choice4"`
	Answer      string         `gorm:"type:text" json:"answer"`
	Explanation Explanation    `gorm:"type:json" json:"explanation"`
	Difficulty  int            `gorm:"default:3" json:"difficulty"`
	Chapter     string         `gorm:"size:50;default:'1'" json:"chapter"`
	Source      string         `gorm:"size:100;index" json:"source"`
	Format      QuestionFormat `gorm:"size:20;index" json:"format"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) Choices() []string {
	return []string{q.Choice1, q.Choice2, q.Choice3, q.Choice4}
}

// InferFormat classifies by the legacy structural rule: a question is
// subjective iff all four choice fields are empty.
func (q *Question) InferFormat() QuestionFormat {
	for _, c := range q.Choices() {
		if strings.TrimSpace(c) != "" {
			return Objective
		}
	}
	return Subjective
}

func (q *Question) IsObjective() bool {
	if q.Format != "" {
		return q.Format == Objective
	}
	return q.InferFormat() == Objective
}

// AnswerIndex returns the 1-based correct choice index of an objective
// question, or ok=false when the stored answer is not an integer in [1,4].
func (q *Question) AnswerIndex() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(q.Answer))
	if err != nil || n < 1 || n > 4 {
		return 0, false
	}
	return n, true
}

// Normalize fills the explicit format tag from the structural rule when an
// ingested row lacks one, and trims the answer and source labels.
func (q *Question) Normalize() {
	q.Answer = strings.TrimSpace(q.Answer)
	q.Source = strings.TrimSpace(q.Source)
	if q.Format == "" {
		q.Format = q.InferFormat()
	}
	if q.Difficulty < 1 || q.Difficulty > 5 {
		q.Difficulty = 3
	}
	if q.Chapter == "" {
		q.Chapter = "1"
	}
}

// Validate enforces the tagged-variant invariants before any write.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("question: empty text")
	}
	switch q.Format {
	case Objective:
		idx, ok := q.AnswerIndex()
		if !ok {
			return fmt.Errorf("question: objective answer %q is not an index in [1,4]", q.Answer)
		}
		if strings.TrimSpace(q.Choices()[idx-1]) == "" {
			return fmt.Errorf("question: choice %d is empty but marked correct", idx)
		}
	case Subjective:
		for i, c := range q.Choices() {
			if strings.TrimSpace(c) != "" {
				return fmt.Errorf("question: subjective question has non-empty choice %d", i+1)
			}
		}
		if strings.TrimSpace(q.Answer) == "" {
			return errors.New("question: subjective question has no model answer")
		}
	default:
		return fmt.Errorf("question: unknown format %q", q.Format)
	}
	return q.Explanation.Validate()
}
