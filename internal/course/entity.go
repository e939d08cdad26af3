package course

import "time"

type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	ProgLang string `json:"progLang"`
}

type Course struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"not null" json:"title"`
	Price           int64      `gorm:"not null" json:"price"`
	Rating          float64    `json:"rating"`
	TotalEnrollment int        `gorm:"not null;default:0" json:"totalEnrollment"`
	Description     string     `json:"description"`
	CourseImg       string     `json:"courseImg"`
	DurationHours   int        `json:"durationHours"`
	Code            string     `json:"code"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	CategoryID      uint       `json:"categoryId"`
	Category        *Category  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
