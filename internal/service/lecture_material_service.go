package service

import (
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/internal/repository"
	"arch_quiz_backend/internal/util"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// LectureMaterialService manages per-week course files. Uploads go through
// the configured storage provider; only the metadata lives in the database.
type LectureMaterialService struct {
	repo    *repository.LectureMaterialRepository
	storage *StorageService
}

func NewLectureMaterialService(repo *repository.LectureMaterialRepository, storage *StorageService) *LectureMaterialService {
	return &LectureMaterialService{repo: repo, storage: storage}
}

func validWeek(week int) bool {
	return week >= model.MinLectureWeek && week <= model.MaxLectureWeek
}

func (s *LectureMaterialService) Upload(ctx context.Context, week int, filename string, reader io.Reader, size int64, contentType string) (*model.LectureMaterial, error) {
	if !validWeek(week) {
		return nil, util.ErrInvalidWeek
	}

	// Prefix with week and timestamp so re-uploads never clobber each other.
	object := fmt.Sprintf("week%02d/%d%s", week, time.Now().UnixNano(), filepath.Ext(filename))
	url, err := s.storage.Upload(ctx, object, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	m := &model.LectureMaterial{
		Week:     week,
		Filename: filename,
		URL:      url,
	}
	if err := s.repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *LectureMaterialService) ListByWeek(week int) ([]model.LectureMaterial, error) {
	if !validWeek(week) {
		return nil, util.ErrInvalidWeek
	}
	return s.repo.ListByWeek(week)
}

func (s *LectureMaterialService) Delete(ctx context.Context, id uint) error {
	m, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	// Metadata removal is the source of truth; a storage miss is not fatal.
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	object := strings.TrimPrefix(m.URL, s.storage.GetURL(""))
	_ = s.storage.Delete(ctx, object)
	return nil
}
