package model

import (
	"testing"
)

func objectiveQuestion() Question {
	return Question{
		Text:    "콘크리트 양생에 대한 설명으로 옳은 것은?",
		Choice1: "수분을 공급한다",
		Choice2: "급격히 건조시킨다",
		Choice3: "진동을 가한다",
		Choice4: "하중을 조기에 가한다",
		Answer:  "1",
		Format:  Objective,
	}
}

func TestInferFormat(t *testing.T) {
	cases := []struct {
		name string
		q    Question
		want QuestionFormat
	}{
		{"all choices set", objectiveQuestion(), Objective},
		{"one choice set", Question{Choice3: "거푸집"}, Objective},
		{"no choices", Question{Text: "시공 순서를 설명하시오", Answer: "모범답안"}, Subjective},
		{"whitespace only choices", Question{Choice1: "  ", Choice2: "\t"}, Subjective},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.q.InferFormat(); got != tc.want {
				t.Errorf("InferFormat() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeFillsFormat(t *testing.T) {
	q := Question{Text: "문제", Choice1: "a", Choice2: "b", Choice3: "c", Choice4: "d", Answer: " 2 "}
	q.Normalize()

	if q.Format != Objective {
		t.Errorf("Format = %q, want %q", q.Format, Objective)
	}
	if q.Answer != "2" {
		t.Errorf("Answer = %q, want trimmed %q", q.Answer, "2")
	}
	if q.Difficulty != 3 {
		t.Errorf("Difficulty = %d, want default 3", q.Difficulty)
	}
	if q.Chapter != "1" {
		t.Errorf("Chapter = %q, want default %q", q.Chapter, "1")
	}

	// an explicit tag is never overwritten by the structural rule
	tagged := Question{Text: "문제", Answer: "모범답안", Format: Subjective}
	tagged.Normalize()
	if tagged.Format != Subjective {
		t.Errorf("explicit format overwritten: got %q", tagged.Format)
	}
}

func TestAnswerIndex(t *testing.T) {
	cases := []struct {
		answer string
		want   int
		ok     bool
	}{
		{"1", 1, true},
		{"4", 4, true},
		{" 3 ", 3, true},
		{"0", 0, false},
		{"5", 0, false},
		{"철근", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		q := Question{Answer: tc.answer}
		got, ok := q.AnswerIndex()
		if got != tc.want || ok != tc.ok {
			t.Errorf("AnswerIndex(%q) = (%d, %v), want (%d, %v)", tc.answer, got, ok, tc.want, tc.ok)
		}
	}
}

func TestQuestionValidate(t *testing.T) {
	valid := objectiveQuestion()
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid objective question rejected: %v", err)
	}

	badIndex := objectiveQuestion()
	badIndex.Answer = "7"
	if err := badIndex.Validate(); err == nil {
		t.Error("answer index out of range accepted")
	}

	emptyCorrect := objectiveQuestion()
	emptyCorrect.Answer = "2"
	emptyCorrect.Choice2 = ""
	if err := emptyCorrect.Validate(); err == nil {
		t.Error("empty correct choice accepted")
	}

	subjective := Question{Text: "양생 방법을 서술하시오", Answer: "습윤 양생", Format: Subjective}
	if err := subjective.Validate(); err != nil {
		t.Errorf("valid subjective question rejected: %v", err)
	}

	mixed := subjective
	mixed.Choice1 = "보기"
	if err := mixed.Validate(); err == nil {
		t.Error("subjective question with choices accepted")
	}

	noAnswer := Question{Text: "문제", Format: Subjective}
	if err := noAnswer.Validate(); err == nil {
		t.Error("subjective question without model answer accepted")
	}
}

func TestExplanationScan(t *testing.T) {
	var e Explanation
	if err := e.Scan(`{"long_form":"해설","summary_points":["a","b"]}`); err != nil {
		t.Fatalf("Scan(json) failed: %v", err)
	}
	if e.LongForm != "해설" || len(e.SummaryPoints) != 2 {
		t.Errorf("Scan(json) = %+v", e)
	}

	// rows written before the structured column hold bare text
	var legacy Explanation
	if err := legacy.Scan("철근은 인장력을 부담한다"); err != nil {
		t.Fatalf("Scan(plain) failed: %v", err)
	}
	if legacy.LongForm != "철근은 인장력을 부담한다" || len(legacy.SummaryPoints) != 0 {
		t.Errorf("Scan(plain) = %+v", legacy)
	}

	var empty Explanation
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if !empty.IsEmpty() {
		t.Errorf("Scan(nil) = %+v, want empty", empty)
	}
}

func TestExplanationValidate(t *testing.T) {
	ok := Explanation{LongForm: "해설", SummaryPoints: []string{"핵심1", "핵심2"}}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid explanation rejected: %v", err)
	}

	blankPoint := Explanation{LongForm: "해설", SummaryPoints: []string{"핵심", " "}}
	if err := blankPoint.Validate(); err == nil {
		t.Error("blank summary point accepted")
	}

	orphanPoints := Explanation{SummaryPoints: []string{"핵심"}}
	if err := orphanPoints.Validate(); err == nil {
		t.Error("summary points without long form accepted")
	}
}
