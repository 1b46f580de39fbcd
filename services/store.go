package services

import (
	"context"

	"celebrato-backend/models"

	"gorm.io/gorm"
)

// ContactStore lists every contact across all users.
type ContactStore interface {
	ListAllContacts(ctx context.Context) ([]models.Contact, error)
}

// TemplateStore lists the templates of one category in a stable order.
type TemplateStore interface {
	ListTemplatesByCategory(ctx context.Context, category models.Category) ([]models.MessageTemplate, error)
}

// GormStore implements ContactStore and TemplateStore on top of gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListAllContacts(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&contacts).Error
	return contacts, err
}

func (s *GormStore) ListTemplatesByCategory(ctx context.Context, category models.Category) ([]models.MessageTemplate, error) {
	var templates []models.MessageTemplate
	err := s.db.WithContext(ctx).
		Where("type = ?", category).
		Order("created_at ASC, id ASC").
		Find(&templates).Error
	return templates, err
}

// DefaultTemplates are created for any category that has no template yet.
var DefaultTemplates = []models.MessageTemplate{
	{Category: models.CategoryBirthday, Content: "🎂 Happy Birthday {name}!", Design: "cake"},
	{Category: models.CategoryAnniversary, Content: "💍 Happy Anniversary {name}!", Design: "hearts"},
}

// SeedDefaultTemplates inserts DefaultTemplates for empty categories and
// returns how many were created.
func (s *GormStore) SeedDefaultTemplates(ctx context.Context) (int, error) {
	created := 0
	for _, def := range DefaultTemplates {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.MessageTemplate{}).
			Where("type = ?", def.Category).
			Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		template := def
		if err := s.db.WithContext(ctx).Create(&template).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
