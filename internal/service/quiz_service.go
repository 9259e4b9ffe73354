package service

import (
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/internal/repository"
	"arch_quiz_backend/internal/util"
	"arch_quiz_backend/pkg/logger"
	"arch_quiz_backend/pkg/monitoring"
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type QuizService struct {
	questionRepo *repository.QuestionRepository
	attemptRepo  *repository.AttemptRepository
	feedbackRepo *repository.FeedbackRepository
	sessions     *SessionStore
	bank         *CSVBankService
	results      *ResultsLog
}

func NewQuizService(
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	feedbackRepo *repository.FeedbackRepository,
	sessions *SessionStore,
	bank *CSVBankService,
	results *ResultsLog,
) *QuizService {
	return &QuizService{
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		feedbackRepo: feedbackRepo,
		sessions:     sessions,
		bank:         bank,
		results:      results,
	}
}

type StartQuizRequest struct {
	Source        string `json:"source" binding:"required"`
	NumObjective  int    `json:"numObjective" binding:"required,min=1"`
	NumSubjective int    `json:"numSubjective" binding:"min=0"`
}

// StartQuiz assembles a fresh question set and opens a session for it,
// replacing any previous session of the same user.
func (s *QuizService) StartQuiz(ctx context.Context, userID uint, req StartQuizRequest) (*QuizSession, error) {
	var questions []model.Question
	var err error

	switch req.Source {
	case model.SourceArchitectExam:
		questions, err = s.sampleFromCSV(s.bank.LoadSeed, req.NumObjective)
	case model.SourceGenerated:
		questions, err = s.sampleFromCSV(s.bank.LoadGenerated, req.NumObjective)
	case model.SourceConstructionExam:
		questions, err = s.sampleFromStore(req.NumObjective, req.NumSubjective)
	default:
		// any other label is a stored source (e.g. lecture-based)
		questions, err = s.questionRepo.SampleRandom(req.Source, model.Objective, req.NumObjective)
	}
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrEmptyQuestionBank
	}

	now := time.Now()
	session := &QuizSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Source:    req.Source,
		CreatedAt: now,
	}
	for _, q := range questions {
		session.Questions = append(session.Questions, SessionQuestion{
			Question: q,
			IssuedAt: now,
		})
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// sampleFromCSV samples a flat-file bank and persists the drawn rows so
// attempts can reference them by id.
func (s *QuizService) sampleFromCSV(load func() ([]model.Question, error), n int) ([]model.Question, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}

	sampled := Sample(all, n)
	out := make([]model.Question, 0, len(sampled))
	for _, q := range sampled {
		if err := q.Validate(); err != nil {
			logger.Log.Warn("skipping invalid bank row", zap.Error(err))
			continue
		}
		if err := s.questionRepo.Create(&q); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *QuizService) sampleFromStore(nObjective, nSubjective int) ([]model.Question, error) {
	objective, err := s.questionRepo.SampleRandom(model.SourceConstructionExam, model.Objective, nObjective)
	if err != nil {
		return nil, err
	}
	if nSubjective <= 0 {
		return objective, nil
	}
	subjective, err := s.questionRepo.SampleRandom(model.SourceConstructionExam, model.Subjective, nSubjective)
	if err != nil {
		return nil, err
	}
	return append(objective, subjective...), nil
}

func (s *QuizService) GetSession(ctx context.Context, userID uint) (*QuizSession, error) {
	return s.sessions.Get(ctx, userID)
}

// Restart drops the current session; the next quiz starts clean.
func (s *QuizService) Restart(ctx context.Context, userID uint) error {
	return s.sessions.Delete(ctx, userID)
}

type QuestionResult struct {
	QuestionID  uint              `json:"questionId"`
	Correct     bool              `json:"correct"`
	AnswerText  string            `json:"answerText"`
	Explanation model.Explanation `json:"explanation"`
}

type QuizResult struct {
	Total   int              `json:"total"`
	Correct int              `json:"correct"`
	Percent float64          `json:"percent"`
	Results []QuestionResult `json:"results"`
}

// Submit grades every question of the active session. Each verdict is
// persisted as an attempt and appended to the results log before it is
// revealed to the caller.
func (s *QuizService) Submit(ctx context.Context, userID uint, username string, answers map[uint]string) (*QuizResult, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Graded {
		return nil, util.ErrSessionSubmitted
	}

	now := time.Now()
	result := &QuizResult{Total: len(session.Questions)}

	for i := range session.Questions {
		sq := &session.Questions[i]
		submitted := answers[sq.Question.ID]
		verdict := GradeQuestion(&sq.Question, submitted)
		solveTime := session.ElapsedSeconds(i, now)

		attempt := &model.Attempt{
			UserID:     userID,
			QuestionID: sq.Question.ID,
			UserAnswer: submitted,
			IsCorrect:  verdict.Correct,
			SolveTime:  solveTime,
		}
		if err := s.attemptRepo.Create(attempt); err != nil {
			return nil, err
		}

		if err := s.results.Append(ResultRow{
			Username:  username,
			Question:  sq.Question.Text,
			Selected:  submitted,
			Answer:    verdict.AnswerText,
			IsCorrect: verdict.Correct,
			SolvedAt:  now,
			Chapter:   sq.Question.Chapter,
			SolveTime: solveTime,
		}); err != nil {
			// the attempt row is already durable; the log keeps going
			logger.Log.Error("failed to append results log row", zap.Error(err))
		}

		monitoring.ObserveAttempt(verdict.Correct)

		sq.Submitted = submitted
		sq.Revealed = true
		sq.Correct = verdict.Correct

		if verdict.Correct {
			result.Correct++
		}
		result.Results = append(result.Results, QuestionResult{
			QuestionID:  sq.Question.ID,
			Correct:     verdict.Correct,
			AnswerText:  verdict.AnswerText,
			Explanation: sq.Question.Explanation,
		})
	}

	session.Graded = true
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	result.Percent = RoundPercent(int64(result.Correct), int64(result.Total))
	return result, nil
}

// SubmitFeedback appends one free-text comment on a question.
func (s *QuizService) SubmitFeedback(userID, questionID uint, comment string) error {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		return util.ErrQuestionNotFound
	}
	return s.feedbackRepo.Create(&model.Feedback{
		UserID:     userID,
		QuestionID: questionID,
		Comment:    comment,
	})
}
