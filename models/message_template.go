package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups templates and classifies a matched event.
type Category string

const (
	CategoryBirthday    Category = "birthday"
	CategoryAnniversary Category = "anniversary"
)

func (c Category) Valid() bool {
	return c == CategoryBirthday || c == CategoryAnniversary
}

// Designs understood by the greeting card UI.
var Designs = []string{"confetti", "balloons", "hearts", "cake", "fireworks"}

func ValidDesign(design string) bool {
	for _, d := range Designs {
		if d == design {
			return true
		}
	}
	return false
}

type MessageTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Category Category  `gorm:"column:type;type:varchar(20);index;not null" json:"type"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Design   string    `gorm:"type:varchar(20);not null" json:"design"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *MessageTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
