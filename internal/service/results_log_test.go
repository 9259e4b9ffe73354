package service

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResultsLogAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	log := NewResultsLog(path)

	solvedAt := time.Date(2026, 3, 2, 14, 30, 5, 0, time.Local)
	rows := []ResultRow{
		{
			Username:  "student1",
			Question:  "양생 방법으로 옳은 것은?",
			Selected:  "습윤 양생",
			Answer:    "습윤 양생",
			IsCorrect: true,
			SolvedAt:  solvedAt,
			Chapter:   "3",
			SolveTime: 42,
		},
		{
			Username:  "student1",
			Question:  "거푸집 존치 기간 기준은?",
			Selected:  "1일",
			Answer:    "강도 기준",
			IsCorrect: false,
			SolvedAt:  solvedAt,
			Chapter:   "4",
			SolveTime: 17,
		},
	}

	for _, r := range rows {
		if err := log.Append(r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw), utf8BOM) {
		t.Error("results log is missing the UTF-8 BOM")
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), utf8BOM)))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header once, then one row per append
	if len(records) != 3 {
		t.Fatalf("log has %d records, want 3", len(records))
	}
	for i, h := range resultsHeader {
		if records[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	if records[1][4] != "정답" {
		t.Errorf("correct row label = %q, want 정답", records[1][4])
	}
	if records[2][4] != "오답" {
		t.Errorf("incorrect row label = %q, want 오답", records[2][4])
	}
	if records[1][5] != "2026-03-02 14:30:05" {
		t.Errorf("solved-at = %q", records[1][5])
	}
	if records[1][7] != "42" {
		t.Errorf("solve time = %q, want 42", records[1][7])
	}
}
