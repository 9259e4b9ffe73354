package service

import (
	"arch_quiz_backend/internal/config"
	"arch_quiz_backend/internal/model"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testGenerationService(baseURL string) *GenerationService {
	s := NewGenerationService(config.AIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gpt-3.5-turbo",
	})
	s.backoff = time.Millisecond
	return s
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

const objectiveJSON = `{
  "문제": "커튼월의 특징으로 옳은 것은?",
  "선택지1": "비내력 외벽이다",
  "선택지2": "내력벽이다",
  "선택지3": "기초의 일부이다",
  "선택지4": "슬래브를 지지한다",
  "정답": "1",
  "해설": "커튼월은 구조 하중을 받지 않는다"
}`

func TestGenerateQuestionObjective(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(completionBody(objectiveJSON)))
	}))
	defer srv.Close()

	q, err := testGenerationService(srv.URL).GenerateQuestion(model.Objective)
	if err != nil {
		t.Fatalf("GenerateQuestion failed: %v", err)
	}
	if q.Text != "커튼월의 특징으로 옳은 것은?" {
		t.Errorf("Text = %q", q.Text)
	}
	if q.Answer != "1" || q.Format != model.Objective {
		t.Errorf("Answer = %q Format = %q", q.Answer, q.Format)
	}
	if q.Source != model.SourceConstructionExam {
		t.Errorf("Source = %q", q.Source)
	}
}

func TestGenerateQuestionStripsCodeFence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("```json\n" + objectiveJSON + "\n```")))
	}))
	defer srv.Close()

	q, err := testGenerationService(srv.URL).GenerateQuestion(model.Objective)
	if err != nil {
		t.Fatalf("fenced payload rejected: %v", err)
	}
	if q.Answer != "1" {
		t.Errorf("Answer = %q", q.Answer)
	}
}

func TestGenerateQuestionRetriesTransient(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch calls {
		case 1:
			w.WriteHeader(http.StatusInternalServerError)
		case 2:
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.Write([]byte(completionBody(objectiveJSON)))
		}
	}))
	defer srv.Close()

	q, err := testGenerationService(srv.URL).GenerateQuestion(model.Objective)
	if err != nil {
		t.Fatalf("retry did not recover: %v", err)
	}
	if calls != 3 {
		t.Errorf("made %d calls, want 3", calls)
	}
	if q == nil {
		t.Fatal("no question returned")
	}
}

func TestGenerateQuestionPermanentFailureStopsRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testGenerationService(srv.URL).GenerateQuestion(model.Objective)
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("made %d calls, want 1 (no retry on a permanent failure)", calls)
	}

	var ce *CallError
	if !errors.As(err, &ce) || ce.Transient {
		t.Errorf("err = %v, want a permanent CallError", err)
	}
}

func TestGenerateQuestionMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("문제: 이것은 JSON이 아닙니다")))
	}))
	defer srv.Close()

	_, err := testGenerationService(srv.URL).GenerateQuestion(model.Objective)
	if err == nil {
		t.Fatal("malformed payload accepted")
	}
	var ce *CallError
	if !errors.As(err, &ce) || ce.Transient {
		t.Errorf("err = %v, want a permanent CallError", err)
	}
}

func TestGenerateByKeywordLegacyFallback(t *testing.T) {
	legacy := "Q: 커튼월의 특징은?\nA. 비내력 외벽 B. 내력벽 C. 기초 D. 슬래브\n정답: A\n해설: 커튼월은 하중을 받지 않는다"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody(legacy)))
	}))
	defer srv.Close()

	q, err := testGenerationService(srv.URL).GenerateByKeyword("커튼월", "중")
	if err != nil {
		t.Fatalf("legacy layout rejected: %v", err)
	}
	if q.Answer != "1" {
		t.Errorf("Answer = %q, want 1 (letter A)", q.Answer)
	}
	if q.Source != model.SourceKeyword {
		t.Errorf("Source = %q", q.Source)
	}
}

func TestGenerateExplanation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody(`{"해설": "긴 해설", "요약": ["핵심1", "핵심2", "핵심3"]}`)))
	}))
	defer srv.Close()

	q := gradeTestQuestion()
	e, err := testGenerationService(srv.URL).GenerateExplanation(q)
	if err != nil {
		t.Fatalf("GenerateExplanation failed: %v", err)
	}
	if e.LongForm != "긴 해설" || len(e.SummaryPoints) != 3 {
		t.Errorf("explanation = %+v", e)
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := StripCodeFence(tc.in); got != tc.want {
			t.Errorf("StripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
