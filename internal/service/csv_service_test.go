package service

import (
	"arch_quiz_backend/internal/config"
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/internal/util"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testBankService(t *testing.T) (*CSVBankService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.QuizConfig{
		SeedCSV:      filepath.Join(dir, "456.csv"),
		GeneratedCSV: filepath.Join(dir, "generated_problems.csv"),
		ResultsCSV:   filepath.Join(dir, "results.csv"),
		ExportCSV:    filepath.Join(dir, "export.csv"),
	}
	return NewCSVBankService(cfg), dir
}

func writeSeedCSV(t *testing.T, path string, withBOM bool) {
	t.Helper()
	content := "문제,선택지1,선택지2,선택지3,선택지4,정답,해설\n" +
		"양생 방법으로 옳은 것은?,습윤 양생,급속 건조,조기 재하,동결,1,수분을 유지해야 한다\n" +
		"거푸집 존치 기간 기준은?,1일,3일,강도 기준,무관,3,압축강도를 기준으로 한다\n"
	if withBOM {
		content = utf8BOM + content
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSeed(t *testing.T) {
	svc, _ := testBankService(t)
	writeSeedCSV(t, svc.cfg.SeedCSV, true)

	qs, err := svc.LoadSeed()
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("loaded %d questions, want 2", len(qs))
	}

	q := qs[0]
	if q.Text != "양생 방법으로 옳은 것은?" {
		t.Errorf("Text = %q", q.Text)
	}
	if q.Answer != "1" {
		t.Errorf("Answer = %q, want %q", q.Answer, "1")
	}
	if q.Source != model.SourceArchitectExam {
		t.Errorf("Source = %q, want seed label", q.Source)
	}
	if q.Format != model.Objective {
		t.Errorf("Format = %q, want objective", q.Format)
	}
	if q.Explanation.LongForm != "수분을 유지해야 한다" {
		t.Errorf("Explanation = %+v", q.Explanation)
	}
}

func TestLoadSeedWithoutBOM(t *testing.T) {
	svc, _ := testBankService(t)
	writeSeedCSV(t, svc.cfg.SeedCSV, false)

	qs, err := svc.LoadSeed()
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("loaded %d questions, want 2", len(qs))
	}
}

func TestLoadSeedMissingFile(t *testing.T) {
	svc, _ := testBankService(t)
	_, err := svc.LoadSeed()
	if !errors.Is(err, util.ErrSeedFileMissing) {
		t.Errorf("err = %v, want ErrSeedFileMissing", err)
	}
}

func TestSample(t *testing.T) {
	qs := make([]model.Question, 5)
	for i := range qs {
		qs[i].Text = string(rune('a' + i))
	}

	if got := Sample(qs, 3); len(got) != 3 {
		t.Errorf("Sample(5, 3) returned %d", len(got))
	}
	// asking for more than exist returns everything
	if got := Sample(qs, 10); len(got) != 5 {
		t.Errorf("Sample(5, 10) returned %d, want 5", len(got))
	}
	if got := Sample(qs, 0); got != nil {
		t.Errorf("Sample(5, 0) returned %d entries, want none", len(got))
	}
	if got := Sample(nil, 3); got != nil {
		t.Errorf("Sample(0, 3) returned %d entries, want none", len(got))
	}

	// sampling must not mutate the input order
	if qs[0].Text != "a" || qs[4].Text != "e" {
		t.Error("Sample mutated its input slice")
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	qs := make([]model.Question, 6)
	for i := range qs {
		qs[i].Text = string(rune('a' + i))
	}

	got := Sample(qs, 6)
	seen := make(map[string]bool, len(got))
	for _, q := range got {
		if seen[q.Text] {
			t.Fatalf("question %q drawn twice", q.Text)
		}
		seen[q.Text] = true
	}
}

func TestAppendGeneratedRoundTrip(t *testing.T) {
	svc, _ := testBankService(t)

	q := &model.Question{
		Text:        "커튼월의 주요 기능은?",
		Choice1:     "비내력 외벽",
		Choice2:     "내력벽",
		Choice3:     "기초",
		Choice4:     "슬래브",
		Answer:      "1",
		Explanation: model.Explanation{LongForm: "커튼월은 하중을 받지 않는 외벽이다"},
		Source:      model.SourceKeyword,
		Format:      model.Objective,
		Difficulty:  4,
	}

	if err := svc.AppendGenerated(q, "커튼월"); err != nil {
		t.Fatalf("AppendGenerated failed: %v", err)
	}
	if err := svc.AppendGenerated(q, "커튼월"); err != nil {
		t.Fatalf("second AppendGenerated failed: %v", err)
	}

	loaded, err := svc.LoadGenerated()
	if err != nil {
		t.Fatalf("LoadGenerated failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d rows, want 2", len(loaded))
	}
	if loaded[0].Text != q.Text || loaded[0].Source != model.SourceKeyword {
		t.Errorf("round trip lost fields: %+v", loaded[0])
	}
	if loaded[0].Difficulty != 4 {
		t.Errorf("Difficulty = %d, want 4", loaded[0].Difficulty)
	}

	// the file must carry a BOM for spreadsheet compatibility
	raw, err := os.ReadFile(svc.cfg.GeneratedCSV)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) < 3 || string(raw[:3]) != utf8BOM {
		t.Error("generated CSV is missing the UTF-8 BOM")
	}
}

func TestExportSnapshot(t *testing.T) {
	svc, _ := testBankService(t)

	qs := []model.Question{
		{
			Text: "제1문", Choice1: "a", Choice2: "b", Choice3: "c", Choice4: "d",
			Answer: "2", Source: model.SourceConstructionExam, Format: model.Objective,
			Difficulty: 3, Chapter: "2",
		},
		{
			Text: "제2문을 서술하시오", Answer: "모범답안",
			Source: model.SourceConstructionExam, Format: model.Subjective,
			Difficulty: 2, Chapter: "5",
		},
	}

	path, err := svc.Export(qs)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if path != svc.cfg.ExportCSV {
		t.Errorf("Export path = %q, want configured target", path)
	}

	// exporting again truncates rather than appends
	if _, err := svc.Export(qs); err != nil {
		t.Fatalf("second Export failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := 0
	for _, b := range raw {
		if b == '\n' {
			lines++
		}
	}
	if lines != 3 { // header + 2 rows
		t.Errorf("export has %d lines, want 3", lines)
	}
}
