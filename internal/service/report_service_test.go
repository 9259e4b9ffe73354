package service

import (
	"testing"
	"time"

	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/internal/repository"
)

func TestRoundPercent(t *testing.T) {
	cases := []struct {
		correct int64
		total   int64
		want    float64
	}{
		{0, 0, 0},
		{0, 4, 0},
		{4, 4, 100},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 7, 14.29},
	}
	for _, tc := range cases {
		if got := RoundPercent(tc.correct, tc.total); got != tc.want {
			t.Errorf("RoundPercent(%d, %d) = %v, want %v", tc.correct, tc.total, got, tc.want)
		}
	}
}

func TestToDailyEntries(t *testing.T) {
	rows := []repository.DailyCountRow{
		{Date: "2026-03-01", Attempts: 4, Correct: 3},
		{Date: "2026-03-02", Attempts: 2, Correct: 0},
	}

	entries := toDailyEntries(rows)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Date != "2026-03-01" || entries[0].Attempts != 4 {
		t.Errorf("first entry = %+v, want date 2026-03-01 with 4 attempts", entries[0])
	}
	if entries[0].Percent != 75 {
		t.Errorf("first entry percent = %v, want 75", entries[0].Percent)
	}
	if entries[1].Percent != 0 {
		t.Errorf("second entry percent = %v, want 0", entries[1].Percent)
	}
}

func TestToDailyEntriesEmpty(t *testing.T) {
	entries := toDailyEntries(nil)
	if entries == nil || len(entries) != 0 {
		t.Errorf("got %v, want empty non-nil slice", entries)
	}
}

func TestToStudentEntries(t *testing.T) {
	login := time.Date(2026, 3, 2, 14, 30, 5, 0, time.Local)
	users := []model.User{
		{BaseModel: model.BaseModel{ID: 3}, Username: "kim", LastLogin: login},
		{BaseModel: model.BaseModel{ID: 7}, Username: "lee"},
	}

	entries := toStudentEntries(users)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID != 3 || entries[0].Username != "kim" {
		t.Errorf("first entry = %+v, want id 3 username kim", entries[0])
	}
	if entries[0].LastLogin != "2026-03-02 14:30:05" {
		t.Errorf("last login = %q, want formatted timestamp", entries[0].LastLogin)
	}
	if entries[1].LastLogin != "" {
		t.Errorf("last login = %q, want empty for a user who never logged in", entries[1].LastLogin)
	}
}
