package service

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

var resultsHeader = []string{"사용자ID", "문제", "선택한답", "정답", "정오답", "풀이날짜", "개념", "풀이시간"}

// ResultRow is one denormalized line of the results log.
type ResultRow struct {
	Username  string
	Question  string
	Selected  string
	Answer    string
	IsCorrect bool
	SolvedAt  time.Time
	Chapter   string
	SolveTime int // seconds
}

// ResultsLog appends graded submissions to a flat CSV, one row per attempt.
// Appends are serialized so concurrent submissions cannot interleave rows.
type ResultsLog struct {
	path string
	mu   sync.Mutex
}

func NewResultsLog(path string) *ResultsLog {
	return &ResultsLog{path: path}
}

func (l *ResultsLog) Append(row ResultRow) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return err
	}

	_, statErr := os.Stat(l.path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if newFile {
		if _, err := f.WriteString(utf8BOM); err != nil {
			return err
		}
	}

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write(resultsHeader); err != nil {
			return err
		}
	}

	label := "오답"
	if row.IsCorrect {
		label = "정답"
	}
	if err := w.Write([]string{
		row.Username,
		row.Question,
		row.Selected,
		row.Answer,
		label,
		row.SolvedAt.Format("2006-01-02 15:04:05"),
		row.Chapter,
		strconv.Itoa(row.SolveTime),
	}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
