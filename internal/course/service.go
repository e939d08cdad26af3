package course

import (
	"context"
	"errors"
	"strings"

	"github.com/saulo-duarte/codecourse-api/internal/config"
)

const (
	defaultLimit = 10
	maxLimit     = 100

	// maxPageNumber keeps (page-1)*limit well inside int range.
	maxPageNumber = 1_000_000
)

type CourseService interface {
	List(ctx context.Context, q ListQuery) (*ListResponse, error)
	GetByID(ctx context.Context, id uint) (*Course, error)
}

type courseService struct {
	repo CourseRepository
}

func NewService(repo CourseRepository) CourseService {
	return &courseService{repo: repo}
}

func (s *courseService) List(ctx context.Context, q ListQuery) (*ListResponse, error) {
	log := config.WithContext(ctx)

	q.Search = strings.TrimSpace(q.Search)
	switch {
	case q.Page < 1:
		q.Page = 1
	case q.Page > maxPageNumber:
		q.Page = maxPageNumber
	}
	switch {
	case q.Limit == 0:
		q.Limit = defaultLimit
	case q.Limit < 1:
		q.Limit = 1
	case q.Limit > maxLimit:
		q.Limit = maxLimit
	}

	courses, total, err := s.repo.List(ctx, q)
	if err != nil {
		log.WithError(err).Error("Failed to list courses")
		return nil, err
	}

	return &ListResponse{
		Data:      courses,
		Page:      q.Page,
		TotalData: total,
		MaxPage:   int((total + int64(q.Limit) - 1) / int64(q.Limit)),
	}, nil
}

func (s *courseService) GetByID(ctx context.Context, id uint) (*Course, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			config.WithContext(ctx).WithError(err).WithField("course_id", id).Error("Failed to load course")
		}
		return nil, err
	}
	return c, nil
}
