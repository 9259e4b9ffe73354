package service

import (
	"arch_quiz_backend/internal/config"
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/internal/util"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// utf8BOM keeps Korean text readable when the CSV files are opened in Excel,
// matching the encoding of the files this system inherits.
const utf8BOM = "\xEF\xBB\xBF"

var seedHeader = []string{"문제", "선택지1", "선택지2", "선택지3", "선택지4", "정답", "해설"}

var generatedHeader = []string{"id", "문제", "선택지1", "선택지2", "선택지3", "선택지4", "정답", "해설", "문제출처", "문제형식", "키워드", "난이도"}

var exportHeader = []string{"id", "question", "choice1", "choice2", "choice3", "choice4", "answer", "explanation", "difficulty", "chapter", "source", "format"}

// CSVBankService reads and writes the flat-file question banks: the seed
// exam archive, the generated-question bank and the full-store export.
type CSVBankService struct {
	cfg *config.QuizConfig
}

func NewCSVBankService(cfg *config.QuizConfig) *CSVBankService {
	return &CSVBankService{cfg: cfg}
}

func openCSVReader(path string) (*csv.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, util.ErrSeedFileMissing
		}
		return nil, nil, err
	}

	// skip the BOM if the file carries one
	var bom [3]byte
	n, _ := io.ReadFull(f, bom[:])
	if n != 3 || string(bom[:]) != utf8BOM {
		f.Seek(0, io.SeekStart)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r, f, nil
}

// LoadSeed reads the whole seed CSV into memory as objective architect-exam
// questions.
func (s *CSVBankService) LoadSeed() ([]model.Question, error) {
	return s.loadBank(s.cfg.SeedCSV, seedLayout)
}

// LoadGenerated reads the generated-question CSV bank.
func (s *CSVBankService) LoadGenerated() ([]model.Question, error) {
	return s.loadBank(s.cfg.GeneratedCSV, generatedLayout)
}

type bankLayout int

const (
	seedLayout bankLayout = iota
	generatedLayout
)

func (s *CSVBankService) loadBank(path string, layout bankLayout) ([]model.Question, error) {
	r, f, err := openCSVReader(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	cols := indexColumns(records[0])
	var qs []model.Question
	for _, rec := range records[1:] {
		q := questionFromRecord(rec, cols, layout)
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		q.Normalize()
		qs = append(qs, q)
	}
	return qs, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))] = i
	}
	return cols
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func questionFromRecord(rec []string, cols map[string]int, layout bankLayout) model.Question {
	q := model.Question{
		Text:        field(rec, cols, "문제"),
		Choice1:     field(rec, cols, "선택지1"),
		Choice2:     field(rec, cols, "선택지2"),
		Choice3:     field(rec, cols, "선택지3"),
		Choice4:     field(rec, cols, "선택지4"),
		Answer:      field(rec, cols, "정답"),
		Explanation: model.Explanation{LongForm: field(rec, cols, "해설")},
		Format:      model.Objective,
	}
	switch layout {
	case seedLayout:
		q.Source = model.SourceArchitectExam
	case generatedLayout:
		q.Source = field(rec, cols, "문제출처")
		if q.Source == "" {
			q.Source = model.SourceKeyword
		}
		if d, err := strconv.Atoi(field(rec, cols, "난이도")); err == nil {
			q.Difficulty = d
		}
	}
	return q
}

// Sample draws up to n questions uniformly at random, without replacement.
// Asking for more than exist returns everything in random order.
func Sample(qs []model.Question, n int) []model.Question {
	if n <= 0 || len(qs) == 0 {
		return nil
	}
	shuffled := make([]model.Question, len(qs))
	copy(shuffled, qs)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// AppendGenerated appends one generated question to the generated bank,
// writing the header and BOM on first use.
func (s *CSVBankService) AppendGenerated(q *model.Question, keyword string) error {
	path := s.cfg.GeneratedCSV
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
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
		if err := w.Write(generatedHeader); err != nil {
			return err
		}
	}
	if err := w.Write([]string{
		strconv.FormatUint(uint64(q.ID), 10),
		q.Text,
		q.Choice1, q.Choice2, q.Choice3, q.Choice4,
		q.Answer,
		q.Explanation.LongForm,
		q.Source,
		string(q.Format),
		keyword,
		strconv.Itoa(q.Difficulty),
	}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Export writes a full dump of the question store to the export CSV and
// returns its path. The dump is a faithful snapshot: re-reading it yields
// every row handed in, once.
func (s *CSVBankService) Export(qs []model.Question) (string, error) {
	path := s.cfg.ExportCSV
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.WriteString(utf8BOM); err != nil {
		return "", err
	}

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return "", err
	}
	for _, q := range qs {
		if err := w.Write([]string{
			strconv.FormatUint(uint64(q.ID), 10),
			q.Text,
			q.Choice1, q.Choice2, q.Choice3, q.Choice4,
			q.Answer,
			q.Explanation.LongForm,
			strconv.Itoa(q.Difficulty),
			q.Chapter,
			q.Source,
			string(q.Format),
		}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}
