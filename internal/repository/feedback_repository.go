package repository

import (
	"arch_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(f *model.Feedback) error {
	return r.DB.Create(f).Error
}

// FeedbackRow joins a comment to the question it targets. Question may be
// empty when the question was deleted after the comment was left.
type FeedbackRow struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"userId"`
	Username   string `json:"username"`
	QuestionID uint   `json:"questionId"`
	Question   string `json:"question"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"createdAt"`
}

func (r *FeedbackRepository) ListWithQuestions(userID uint) ([]FeedbackRow, error) {
	query := r.DB.Table("feedback f").
		Select("f.id, f.user_id, u.username, f.question_id, COALESCE(q.text, '') as question, f.comment, DATE_FORMAT(f.created_at, '%Y-%m-%d %H:%i:%s') as created_at").
		Joins("LEFT JOIN questions q ON q.id = f.question_id").
		Joins("JOIN users u ON u.id = f.user_id").
		Where("f.deleted_at IS NULL").
		Order("f.created_at DESC")
	if userID > 0 {
		query = query.Where("f.user_id = ?", userID)
	}
	var rows []FeedbackRow
	err := query.Scan(&rows).Error
	return rows, err
}
