package services

import (
	"time"

	"celebrato-backend/models"
)

// Matches reports whether stored falls on the given month and day.
// The year of stored is ignored and no timezone conversion is applied.
func Matches(todayMonth time.Month, todayDay int, stored *time.Time) bool {
	if stored == nil {
		return false
	}
	return stored.Month() == todayMonth && stored.Day() == todayDay
}

// Classify returns the category of the contact's event for the given day.
// Birthday wins when both dates fall on the same day.
func Classify(c *models.Contact, todayMonth time.Month, todayDay int) (models.Category, bool) {
	if Matches(todayMonth, todayDay, c.Birthday) {
		return models.CategoryBirthday, true
	}
	if Matches(todayMonth, todayDay, c.Anniversary) {
		return models.CategoryAnniversary, true
	}
	return "", false
}
