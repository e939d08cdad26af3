package course

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("course not found")

var sortColumns = map[string]string{
	"price":   "price ASC",
	"-price":  "price DESC",
	"title":   "title ASC",
	"-title":  "title DESC",
	"rating":  "rating ASC",
	"-rating": "rating DESC",
}

type CourseRepository interface {
	List(ctx context.Context, q ListQuery) ([]Course, int64, error)
	GetByID(ctx context.Context, id uint) (*Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context, q ListQuery) ([]Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&Course{})
	if q.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
	}
	if q.CategoryID != 0 {
		query = query.Where("category_id = ?", q.CategoryID)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := sortColumns[q.Sort]
	if !ok {
		order = "id ASC"
	}

	courses := make([]Course, 0, q.Limit)
	err := query.
		Preload("Category").
		Order(order).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*Course, error) {
	var c Course
	if err := r.db.WithContext(ctx).Preload("Category").First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
