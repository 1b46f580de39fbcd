package services

import (
	"fmt"
	"sort"
	"time"

	"celebrato-backend/models"
	"celebrato-backend/utils"

	"github.com/google/uuid"
)

type UpcomingEvent struct {
	ContactID uuid.UUID       `json:"contactId"`
	Name      string          `json:"name"`
	Category  models.Category `json:"type"`
	Date      string          `json:"date"`
	DaysUntil int             `json:"daysUntil"`
	Label     string          `json:"label"`
}

// UpcomingEvents lists birthdays and anniversaries falling within the next
// horizonDays days (today included), soonest first.
func UpcomingEvents(now time.Time, contacts []models.Contact, horizonDays int) []UpcomingEvent {
	events := []UpcomingEvent{}
	for _, c := range contacts {
		for _, field := range []struct {
			category models.Category
			date     *time.Time
		}{
			{models.CategoryBirthday, c.Birthday},
			{models.CategoryAnniversary, c.Anniversary},
		} {
			if field.date == nil {
				continue
			}
			next := nextOccurrence(now, *field.date)
			days := utils.DaysBetween(now, next)
			if days >= horizonDays {
				continue
			}
			events = append(events, UpcomingEvent{
				ContactID: c.ID,
				Name:      c.Name,
				Category:  field.category,
				Date:      next.Format(utils.DateLayout),
				DaysUntil: days,
				Label:     dayLabel(days),
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].DaysUntil != events[j].DaysUntil {
			return events[i].DaysUntil < events[j].DaysUntil
		}
		return events[i].Name < events[j].Name
	})
	return events
}

// nextOccurrence is the first day on or after now with the stored month and
// day. Feb 29 only occurs in leap years, matching the daily tick.
func nextOccurrence(now, stored time.Time) time.Time {
	today := utils.BeginningOfDay(now)
	for year := now.Year(); ; year++ {
		d := time.Date(year, stored.Month(), stored.Day(), 0, 0, 0, 0, now.Location())
		if d.Month() != stored.Month() || d.Before(today) {
			continue
		}
		return d
	}
}

func dayLabel(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
