package service

import (
	"testing"
)

func TestParseLegacyProblem(t *testing.T) {
	text := `Q: 커튼월의 특징으로 옳은 것은?
A. 비내력 외벽이다 B. 내력벽이다 C. 기초의 일부이다 D. 슬래브를 지지한다
정답: B
해설: 시험용 해설입니다`

	q, ok := ParseLegacyProblem(text)
	if !ok {
		t.Fatal("well-formed legacy text rejected")
	}
	if q.Text != "커튼월의 특징으로 옳은 것은?" {
		t.Errorf("Text = %q", q.Text)
	}
	if q.Choice1 != "비내력 외벽이다" || q.Choice4 != "슬래브를 지지한다" {
		t.Errorf("choices = %q %q %q %q", q.Choice1, q.Choice2, q.Choice3, q.Choice4)
	}
	if q.Answer != "2" {
		t.Errorf("Answer = %q, want 2 (letter B)", q.Answer)
	}
	if q.Explanation.LongForm != "시험용 해설입니다" {
		t.Errorf("Explanation = %+v", q.Explanation)
	}
}

func TestParseLegacyProblemFullwidthMarkers(t *testing.T) {
	text := `Q： 문제 텍스트
A． 보기1 B． 보기2 C． 보기3 D． 보기4
정답： C`

	q, ok := ParseLegacyProblem(text)
	if !ok {
		t.Fatal("fullwidth punctuation rejected")
	}
	if q.Answer != "3" {
		t.Errorf("Answer = %q, want 3", q.Answer)
	}
}

func TestParseLegacyProblemRejectsIncomplete(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"no question marker", "A. 1 B. 2 C. 3 D. 4\n정답: A"},
		{"three choices", "Q: 문제\nA. 1 B. 2 C. 3\n정답: A"},
		{"no answer", "Q: 문제\nA. 1 B. 2 C. 3 D. 4"},
		{"plain prose", "이 텍스트는 문제 형식이 아닙니다"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := ParseLegacyProblem(tc.text); ok {
				t.Error("incomplete text accepted")
			}
		})
	}
}
