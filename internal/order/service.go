package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saulo-duarte/codecourse-api/internal/config"
	"github.com/saulo-duarte/codecourse-api/internal/course"
	"github.com/saulo-duarte/codecourse-api/internal/events"
	"github.com/saulo-duarte/codecourse-api/internal/metrics"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrCourseNotFound = course.ErrNotFound

type OrderService interface {
	Checkout(ctx context.Context, userID, courseID uint, paymentMethod string) (*CheckoutResponse, error)
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
}

type orderService struct {
	db        *gorm.DB
	repo      OrderRepository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(db *gorm.DB, repo OrderRepository, publisher events.Publisher) OrderService {
	return &orderService{
		db:        db,
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Checkout creates the order, its single line item and the enrollment bump atomically.
// The order.created event is only published after commit.
func (s *orderService) Checkout(ctx context.Context, userID, courseID uint, paymentMethod string) (*CheckoutResponse, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"course_id": courseID,
	})

	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	var (
		ord Order
		crs course.Course
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&crs, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("load course: %w", err)
		}

		ord = Order{
			OrderAt:       s.now(),
			PaymentMethod: paymentMethod,
			PaymentStatus: PaymentPending,
			TotalPrice:    crs.Price,
			UserID:        userID,
		}
		if err := tx.Create(&ord).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		detail := OrderDetail{
			Quantity: 1,
			Price:    crs.Price,
			OrderID:  ord.ID,
			CourseID: crs.ID,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return fmt.Errorf("create order detail: %w", err)
		}
		ord.Details = []OrderDetail{detail}

		res := tx.Model(&course.Course{}).
			Where("id = ?", crs.ID).
			UpdateColumn("total_enrollment", gorm.Expr("total_enrollment + ?", 1))
		if res.Error != nil {
			return fmt.Errorf("increment enrollment: %w", res.Error)
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("increment enrollment: %d rows affected", res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			metrics.Checkouts.WithLabelValues("not_found").Inc()
			log.Warn("Checkout for unknown course")
			return nil, err
		}
		metrics.Checkouts.WithLabelValues("failure").Inc()
		log.WithError(err).Error("Checkout rolled back")
		return nil, err
	}
	metrics.Checkouts.WithLabelValues("success").Inc()
	log.WithField("order_id", ord.ID).Info("Checkout committed")

	event := events.OrderCreated{
		OrderID:       ord.ID,
		UserID:        userID,
		CourseID:      crs.ID,
		TotalPrice:    ord.TotalPrice,
		PaymentMethod: ord.PaymentMethod,
	}
	if err := s.publisher.Publish(ctx, events.OrderCreatedKey, event); err != nil {
		log.WithError(err).Warn("Failed to publish order.created")
	}

	return &CheckoutResponse{
		Message: "Checkout successful",
		Order: OrderSummary{
			ID:            ord.ID,
			OrderAt:       ord.OrderAt,
			PaymentMethod: ord.PaymentMethod,
			PaymentStatus: ord.PaymentStatus,
			TotalPrice:    ord.TotalPrice,
			CourseName:    crs.Title,
		},
	}, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list orders")
		return nil, err
	}
	return orders, nil
}
