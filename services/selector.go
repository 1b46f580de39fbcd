package services

import (
	"math/rand/v2"
	"sort"

	"celebrato-backend/models"
)

// TemplateSelector picks one template out of a same-category pool.
type TemplateSelector func(templates []models.MessageTemplate) (models.MessageTemplate, bool)

// FirstTemplate is the daily policy: the oldest template, ties broken by id,
// so the same pool always yields the same greeting.
func FirstTemplate(templates []models.MessageTemplate) (models.MessageTemplate, bool) {
	if len(templates) == 0 {
		return models.MessageTemplate{}, false
	}
	sorted := make([]models.MessageTemplate, len(templates))
	copy(sorted, templates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})
	return sorted[0], true
}

// RandomTemplate is the test message policy: uniform over the pool.
func RandomTemplate(templates []models.MessageTemplate) (models.MessageTemplate, bool) {
	if len(templates) == 0 {
		return models.MessageTemplate{}, false
	}
	return templates[rand.IntN(len(templates))], true
}
