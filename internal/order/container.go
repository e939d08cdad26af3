package order

import (
	"github.com/saulo-duarte/codecourse-api/internal/events"
	"gorm.io/gorm"
)

type OrderContainer struct {
	Handler *Handler
}

func NewOrderContainer(db *gorm.DB, publisher events.Publisher) *OrderContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, publisher)
	handler := NewHandler(service)

	return &OrderContainer{
		Handler: handler,
	}
}
