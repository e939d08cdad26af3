package order

import (
	"time"

	util "github.com/saulo-duarte/codecourse-api/internal/utils"
)

// CheckoutRequest also binds "CourseId" since encoding/json matches keys case-insensitively.
type CheckoutRequest struct {
	CourseID      util.FlexibleID `json:"courseId"`
	PaymentMethod string          `json:"paymentMethod"`
}

type OrderSummary struct {
	ID            uint          `json:"id"`
	OrderAt       time.Time     `json:"orderAt"`
	PaymentMethod string        `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	TotalPrice    int64         `json:"totalPrice"`
	CourseName    string        `json:"courseName"`
}

type CheckoutResponse struct {
	Message string       `json:"message"`
	Order   OrderSummary `json:"order"`
}
