package service

import (
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/internal/repository"
	"math"
)

// RoundPercent converts correct/total to a percentage rounded to two
// decimals. A zero total yields 0, never a division error.
func RoundPercent(correct, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*10000) / 100
}

type AccuracyEntry struct {
	Key      string  `json:"key"`
	Attempts int64   `json:"attempts"`
	Correct  int64   `json:"correct"`
	Percent  float64 `json:"percent"`
}

// ReportService computes read-only projections over the attempt log. Every
// query tolerates an empty log by returning an empty slice.
type ReportService struct {
	attemptRepo  *repository.AttemptRepository
	feedbackRepo *repository.FeedbackRepository
	userRepo     *repository.UserRepository
}

func NewReportService(attemptRepo *repository.AttemptRepository, feedbackRepo *repository.FeedbackRepository, userRepo *repository.UserRepository) *ReportService {
	return &ReportService{attemptRepo: attemptRepo, feedbackRepo: feedbackRepo, userRepo: userRepo}
}

func toEntries(rows []repository.AccuracyRow) []AccuracyEntry {
	entries := make([]AccuracyEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, AccuracyEntry{
			Key:      r.Key,
			Attempts: r.Attempts,
			Correct:  r.Correct,
			Percent:  RoundPercent(r.Correct, r.Attempts),
		})
	}
	return entries
}

// AccuracyByChapter groups attempts by question chapter. userID 0 means all
// users.
func (s *ReportService) AccuracyByChapter(userID uint) ([]AccuracyEntry, error) {
	rows, err := s.attemptRepo.AccuracyByChapter(userID)
	if err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

func (s *ReportService) AccuracyByDifficulty(userID uint) ([]AccuracyEntry, error) {
	rows, err := s.attemptRepo.AccuracyByDifficulty(userID)
	if err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

func (s *ReportService) AccuracyByUser() ([]AccuracyEntry, error) {
	rows, err := s.attemptRepo.AccuracyByUser()
	if err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

type DailyEntry struct {
	Date     string  `json:"date"`
	Attempts int64   `json:"attempts"`
	Correct  int64   `json:"correct"`
	Percent  float64 `json:"percent"`
}

func toDailyEntries(rows []repository.DailyCountRow) []DailyEntry {
	entries := make([]DailyEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, DailyEntry{
			Date:     r.Date,
			Attempts: r.Attempts,
			Correct:  r.Correct,
			Percent:  RoundPercent(r.Correct, r.Attempts),
		})
	}
	return entries
}

// DailyCounts groups attempts by solve date for the history chart. userID 0
// means all users.
func (s *ReportService) DailyCounts(userID uint) ([]DailyEntry, error) {
	rows, err := s.attemptRepo.DailyCounts(userID)
	if err != nil {
		return nil, err
	}
	return toDailyEntries(rows), nil
}

type UserOverview struct {
	Attempts       int64                         `json:"attempts"`
	Correct        int64                         `json:"correct"`
	Percent        float64                       `json:"percent"`
	AvgSolveTime   float64                       `json:"avgSolveTime"`
	MissedChapters []repository.MissedChapterRow `json:"missedChapters"`
	Recent         []repository.RecentAttemptRow `json:"recent"`
}

// Overview is the per-user dashboard payload: totals, accuracy, the five
// most-missed chapters and the ten most recent attempts.
func (s *ReportService) Overview(userID uint) (*UserOverview, error) {
	totals, err := s.attemptRepo.TotalsForUser(userID)
	if err != nil {
		return nil, err
	}
	missed, err := s.attemptRepo.MostMissedChapters(userID, 5)
	if err != nil {
		return nil, err
	}
	recent, err := s.attemptRepo.RecentForUser(userID, 10)
	if err != nil {
		return nil, err
	}
	return &UserOverview{
		Attempts:       totals.Attempts,
		Correct:        totals.Correct,
		Percent:        RoundPercent(totals.Correct, totals.Attempts),
		AvgSolveTime:   math.Round(totals.AvgSolveTime*10) / 10,
		MissedChapters: missed,
		Recent:         recent,
	}, nil
}

// Feedback lists comments joined to their questions. userID 0 means all
// users (admin view).
func (s *ReportService) Feedback(userID uint) ([]repository.FeedbackRow, error) {
	return s.feedbackRepo.ListWithQuestions(userID)
}

// StudentEntry is one row of the admin user picker for per-user reports.
type StudentEntry struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	LastLogin string `json:"lastLogin"`
}

func toStudentEntries(users []model.User) []StudentEntry {
	entries := make([]StudentEntry, 0, len(users))
	for _, u := range users {
		entry := StudentEntry{ID: u.ID, Username: u.Username}
		if !u.LastLogin.IsZero() {
			entry.LastLogin = u.LastLogin.Format("2006-01-02 15:04:05")
		}
		entries = append(entries, entry)
	}
	return entries
}

// Students lists student accounts so an admin can pick whose report to view.
func (s *ReportService) Students() ([]StudentEntry, error) {
	users, err := s.userRepo.ListStudents()
	if err != nil {
		return nil, err
	}
	return toStudentEntries(users), nil
}
