package order

import (
	"time"

	"github.com/saulo-duarte/codecourse-api/internal/course"
	"github.com/saulo-duarte/codecourse-api/internal/user"
)

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderAt       time.Time     `gorm:"not null" json:"orderAt"`
	PaymentMethod string        `gorm:"not null" json:"paymentMethod"`
	PaymentStatus PaymentStatus `gorm:"not null;default:pending" json:"paymentStatus"`
	TotalPrice    int64         `gorm:"not null" json:"totalPrice"`
	UserID        uint          `gorm:"not null;index" json:"userId"`
	User          *user.User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Details       []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type OrderDetail struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	Price     int64          `gorm:"not null" json:"price"`
	OrderID   uint           `gorm:"not null;index" json:"orderId"`
	CourseID  uint           `gorm:"not null;index" json:"courseId"`
	Course    *course.Course `gorm:"foreignKey:CourseID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"course,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
