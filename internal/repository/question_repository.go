package repository

import (
	"arch_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

// SampleRandom draws up to limit questions of one source and format,
// uniformly at random. Fewer than limit rows means fewer are returned.
func (r *QuestionRepository) SampleRandom(source string, format model.QuestionFormat, limit int) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("source = ? AND format = ?", source, format).
		Order("RAND()").
		Limit(limit).
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListBySource(source string, page, limit int) ([]model.Question, int64, error) {
	var qs []model.Question
	var total int64
	query := r.DB.Model(&model.Question{})
	if source != "" {
		query = query.Where("source = ?", source)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *QuestionRepository) ListAll() ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Order("id asc").Find(&qs).Error
	return qs, err
}

type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

func (r *QuestionRepository) CountBySource() ([]SourceCount, error) {
	var rows []SourceCount
	err := r.DB.Model(&model.Question{}).
		Select("source, COUNT(*) as count").
		Group("source").
		Order("source").
		Scan(&rows).Error
	return rows, err
}
