package repository

import (
	"arch_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type LectureMaterialRepository struct {
	DB *gorm.DB
}

func NewLectureMaterialRepository(db *gorm.DB) *LectureMaterialRepository {
	return &LectureMaterialRepository{DB: db}
}

func (r *LectureMaterialRepository) Create(m *model.LectureMaterial) error {
	return r.DB.Create(m).Error
}

func (r *LectureMaterialRepository) FindByID(id uint) (*model.LectureMaterial, error) {
	var m model.LectureMaterial
	err := r.DB.First(&m, id).Error
	return &m, err
}

func (r *LectureMaterialRepository) ListByWeek(week int) ([]model.LectureMaterial, error) {
	var ms []model.LectureMaterial
	err := r.DB.Where("week = ?", week).Order("created_at asc").Find(&ms).Error
	return ms, err
}

func (r *LectureMaterialRepository) Delete(id uint) error {
	return r.DB.Delete(&model.LectureMaterial{}, id).Error
}
