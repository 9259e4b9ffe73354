package service

import (
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/internal/repository"
	"arch_quiz_backend/internal/util"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// QuestionService is the admin side of the question bank: authoring, CSV
// import/export and LLM generation.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	bank         *CSVBankService
	gen          *GenerationService
}

func NewQuestionService(questionRepo *repository.QuestionRepository, bank *CSVBankService, gen *GenerationService) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, bank: bank, gen: gen}
}

type QuestionRequest struct {
	Text        string               `json:"question" binding:"required"`
	Choice1     string               `json:"choice1"`
	Choice2     string               `json:"choice2"`
	Choice3     string               `json:"choice3"`
	Choice4     string               `json:"choice4"`
	Answer      string               `json:"answer" binding:"required"`
	Explanation model.Explanation    `json:"explanation"`
	Difficulty  int                  `json:"difficulty"`
	Chapter     string               `json:"chapter"`
	Source      string               `json:"source"`
	Format      model.QuestionFormat `json:"format"`
}

func (r *QuestionRequest) toModel() *model.Question {
	q := &model.Question{
		Text:        r.Text,
		Choice1:     r.Choice1,
		Choice2:     r.Choice2,
		Choice3:     r.Choice3,
		Choice4:     r.Choice4,
		Answer:      r.Answer,
		Explanation: r.Explanation,
		Difficulty:  r.Difficulty,
		Chapter:     r.Chapter,
		Source:      r.Source,
		Format:      r.Format,
	}
	if q.Source == "" {
		q.Source = model.SourceConstructionExam
	}
	q.Normalize()
	return q
}

func (s *QuestionService) CreateQuestion(req QuestionRequest) (*model.Question, error) {
	q := req.toModel()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) GetQuestion(id uint) (*model.Question, error) {
	return s.questionRepo.FindByID(id)
}

func (s *QuestionService) ListQuestions(source string, page, limit int) ([]model.Question, int64, error) {
	return s.questionRepo.ListBySource(source, page, limit)
}

func (s *QuestionService) ListSources() ([]repository.SourceCount, error) {
	return s.questionRepo.CountBySource()
}

func (s *QuestionService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	existing, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}

	updated := req.toModel()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if req.Source == "" {
		updated.Source = existing.Source
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if err := s.questionRepo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *QuestionService) DeleteQuestion(id uint) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		return util.ErrQuestionNotFound
	}
	return s.questionRepo.Delete(id)
}

// ImportCSV ingests an uploaded question bank. Rows use the seed layout
// (문제, 선택지1..4, 정답, 해설) and are stored as objective architect-exam
// questions. Returns how many rows were imported.
func (s *QuestionService) ImportCSV(reader io.Reader) (int, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("reading upload: %w", err)
	}
	if len(records) <= 1 {
		return 0, nil
	}

	cols := indexColumns(records[0])
	imported := 0
	for _, rec := range records[1:] {
		q := questionFromRecord(rec, cols, seedLayout)
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		q.Normalize()
		if err := q.Validate(); err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+2, err)
		}
		if err := s.questionRepo.Create(&q); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// Export dumps every stored question to the export CSV and returns its path.
func (s *QuestionService) Export() (string, error) {
	qs, err := s.questionRepo.ListAll()
	if err != nil {
		return "", err
	}
	return s.bank.Export(qs)
}

// Generate asks the model for a new question of the given format and stores
// it on success.
func (s *QuestionService) Generate(format model.QuestionFormat) (*model.Question, error) {
	q, err := s.gen.GenerateQuestion(format)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

// GenerateFromLecture builds and stores a question from lecture text.
func (s *QuestionService) GenerateFromLecture(lectureText string) (*model.Question, error) {
	q, err := s.gen.GenerateFromLecture(lectureText)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

// GenerateByKeyword builds a question around a keyword, stores it and
// appends it to the generated-question CSV bank.
func (s *QuestionService) GenerateByKeyword(keyword, difficulty string) (*model.Question, error) {
	q, err := s.gen.GenerateByKeyword(keyword, difficulty)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(q); err != nil {
		return nil, err
	}
	if err := s.bank.AppendGenerated(q, keyword); err != nil {
		return nil, err
	}
	return q, nil
}

// RegenerateExplanation replaces a question's explanation with a fresh
// long-form text plus three-point summary.
func (s *QuestionService) RegenerateExplanation(id uint) (*model.Question, error) {
	q, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	e, err := s.gen.GenerateExplanation(q)
	if err != nil {
		return nil, err
	}
	q.Explanation = *e
	if err := s.questionRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}
