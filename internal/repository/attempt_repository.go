package repository

import (
	"arch_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(a *model.Attempt) error {
	return r.DB.Create(a).Error
}

// AccuracyRow is one aggregation bucket over the attempt log. Percent is
// rounded to two decimals by the reporting service, not in SQL.
type AccuracyRow struct {
	Key      string `json:"key"`
	Attempts int64  `json:"attempts"`
	Correct  int64  `json:"correct"`
}

func (r *AttemptRepository) AccuracyByChapter(userID uint) ([]AccuracyRow, error) {
	query := r.DB.Table("attempts a").
		Select("q.chapter as `key`, COUNT(*) as attempts, SUM(a.is_correct) as correct").
		Joins("JOIN questions q ON q.id = a.question_id").
		Where("a.deleted_at IS NULL").
		Group("q.chapter").
		Order("q.chapter")
	if userID > 0 {
		query = query.Where("a.user_id = ?", userID)
	}
	var rows []AccuracyRow
	err := query.Scan(&rows).Error
	return rows, err
}

func (r *AttemptRepository) AccuracyByDifficulty(userID uint) ([]AccuracyRow, error) {
	query := r.DB.Table("attempts a").
		Select("CAST(q.difficulty AS CHAR) as `key`, COUNT(*) as attempts, SUM(a.is_correct) as correct").
		Joins("JOIN questions q ON q.id = a.question_id").
		Where("a.deleted_at IS NULL").
		Group("q.difficulty").
		Order("q.difficulty")
	if userID > 0 {
		query = query.Where("a.user_id = ?", userID)
	}
	var rows []AccuracyRow
	err := query.Scan(&rows).Error
	return rows, err
}

func (r *AttemptRepository) AccuracyByUser() ([]AccuracyRow, error) {
	var rows []AccuracyRow
	err := r.DB.Table("attempts a").
		Select("u.username as `key`, COUNT(*) as attempts, SUM(a.is_correct) as correct").
		Joins("JOIN users u ON u.id = a.user_id").
		Where("a.deleted_at IS NULL").
		Group("u.username").
		Order("u.username").
		Scan(&rows).Error
	return rows, err
}

type UserTotals struct {
	Attempts     int64   `json:"attempts"`
	Correct      int64   `json:"correct"`
	AvgSolveTime float64 `json:"avgSolveTime"`
}

func (r *AttemptRepository) TotalsForUser(userID uint) (*UserTotals, error) {
	var t UserTotals
	err := r.DB.Table("attempts").
		Select("COUNT(*) as attempts, COALESCE(SUM(is_correct), 0) as correct, COALESCE(AVG(solve_time), 0) as avg_solve_time").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Scan(&t).Error
	return &t, err
}

// MissedChapterRow counts wrong answers per chapter for one user.
type MissedChapterRow struct {
	Chapter string `json:"chapter"`
	Missed  int64  `json:"missed"`
}

func (r *AttemptRepository) MostMissedChapters(userID uint, limit int) ([]MissedChapterRow, error) {
	var rows []MissedChapterRow
	err := r.DB.Table("attempts a").
		Select("q.chapter as chapter, COUNT(*) as missed").
		Joins("JOIN questions q ON q.id = a.question_id").
		Where("a.user_id = ? AND a.is_correct = ? AND a.deleted_at IS NULL", userID, false).
		Group("q.chapter").
		Order("missed DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// DailyCountRow is one day's worth of solving activity.
type DailyCountRow struct {
	Date     string `json:"date"`
	Attempts int64  `json:"attempts"`
	Correct  int64  `json:"correct"`
}

func (r *AttemptRepository) DailyCounts(userID uint) ([]DailyCountRow, error) {
	query := r.DB.Table("attempts").
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') as date, COUNT(*) as attempts, SUM(is_correct) as correct").
		Where("deleted_at IS NULL").
		Group("date").
		Order("date")
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	var rows []DailyCountRow
	err := query.Scan(&rows).Error
	return rows, err
}

type RecentAttemptRow struct {
	QuestionID uint   `json:"questionId"`
	Question   string `json:"question"`
	UserAnswer string `json:"userAnswer"`
	Answer     string `json:"answer"`
	IsCorrect  bool   `json:"isCorrect"`
	Chapter    string `json:"chapter"`
	CreatedAt  string `json:"createdAt"`
}

func (r *AttemptRepository) RecentForUser(userID uint, limit int) ([]RecentAttemptRow, error) {
	var rows []RecentAttemptRow
	err := r.DB.Table("attempts a").
		Select("a.question_id, q.text as question, a.user_answer, q.answer, a.is_correct, q.chapter, DATE_FORMAT(a.created_at, '%Y-%m-%d %H:%i:%s') as created_at").
		Joins("JOIN questions q ON q.id = a.question_id").
		Where("a.user_id = ? AND a.deleted_at IS NULL", userID).
		Order("a.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
