package services

import (
	"context"
	"testing"
	"time"

	"celebrato-backend/models"
	"celebrato-backend/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var storeEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func createTemplate(t *testing.T, db *gorm.DB, id uuid.UUID, category models.Category, content string, createdAt time.Time) models.MessageTemplate {
	t.Helper()
	tmpl := models.MessageTemplate{ID: id, Category: category, Content: content, Design: "cake", CreatedAt: createdAt}
	require.NoError(t, db.Create(&tmpl).Error)
	return tmpl
}

func TestGormStore_ListAllContactsSpansUsers(t *testing.T) {
	db := testutil.OpenDB(t)
	ana := testutil.CreateUser(t, db, "ana@example.com")
	ben := testutil.CreateUser(t, db, "ben@example.com")

	for i, c := range []models.Contact{
		{UserID: ana.ID, Name: "Ana's mom", Phone: "+15550000001"},
		{UserID: ben.ID, Name: "Ben's dad", Phone: "+15550000002"},
		{UserID: ana.ID, Name: "Ana's sister", Phone: "+15550000003"},
		{UserID: ben.ID, Name: "Ben's ex", Phone: "+15550000004"},
	} {
		c.CreatedAt = storeEpoch.Add(time.Duration(i) * time.Hour)
		require.NoError(t, db.Create(&c).Error)
		if c.Name == "Ben's ex" {
			require.NoError(t, db.Delete(&c).Error)
		}
	}

	contacts, err := NewGormStore(db).ListAllContacts(context.Background())

	require.NoError(t, err)
	var names []string
	for _, c := range contacts {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Ana's mom", "Ben's dad", "Ana's sister"}, names)
	assert.Equal(t, ben.ID, contacts[1].UserID)
}

func TestGormStore_ListTemplatesByCategoryOrder(t *testing.T) {
	db := testutil.OpenDB(t)
	late := createTemplate(t, db, uuid.New(), models.CategoryBirthday, "late", storeEpoch.Add(2*time.Hour))
	tieB := createTemplate(t, db, uuid.MustParse("00000000-0000-4000-8000-000000000002"), models.CategoryBirthday, "tie b", storeEpoch)
	tieA := createTemplate(t, db, uuid.MustParse("00000000-0000-4000-8000-000000000001"), models.CategoryBirthday, "tie a", storeEpoch)
	deleted := createTemplate(t, db, uuid.New(), models.CategoryBirthday, "deleted", storeEpoch.Add(time.Hour))
	createTemplate(t, db, uuid.New(), models.CategoryAnniversary, "anniversary", storeEpoch)
	require.NoError(t, db.Delete(&deleted).Error)

	templates, err := NewGormStore(db).ListTemplatesByCategory(context.Background(), models.CategoryBirthday)

	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, tieA.ID, templates[0].ID)
	assert.Equal(t, tieB.ID, templates[1].ID)
	assert.Equal(t, late.ID, templates[2].ID)

	first, ok := FirstTemplate(templates)
	require.True(t, ok)
	assert.Equal(t, "tie a", first.Content)
}

func TestGormStore_SeedDefaultTemplatesIsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	store := NewGormStore(db)

	n, err := store.SeedDefaultTemplates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = store.SeedDefaultTemplates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	birthday, err := store.ListTemplatesByCategory(context.Background(), models.CategoryBirthday)
	require.NoError(t, err)
	require.Len(t, birthday, 1)
	assert.Equal(t, "🎂 Happy Birthday {name}!", birthday[0].Content)
}

func TestGormStore_SeedOnlyFillsEmptyCategories(t *testing.T) {
	db := testutil.OpenDB(t)
	createTemplate(t, db, uuid.New(), models.CategoryBirthday, "custom {name}", storeEpoch)
	store := NewGormStore(db)

	n, err := store.SeedDefaultTemplates(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	birthday, err := store.ListTemplatesByCategory(context.Background(), models.CategoryBirthday)
	require.NoError(t, err)
	require.Len(t, birthday, 1)
	assert.Equal(t, "custom {name}", birthday[0].Content)
	anniversary, err := store.ListTemplatesByCategory(context.Background(), models.CategoryAnniversary)
	require.NoError(t, err)
	assert.Len(t, anniversary, 1)
}

func TestGormStore_DailyTickOverDatabase(t *testing.T) {
	db := testutil.OpenDB(t)
	ana := testutil.CreateUser(t, db, "ana@example.com")
	ben := testutil.CreateUser(t, db, "ben@example.com")
	store := NewGormStore(db)
	_, err := store.SeedDefaultTemplates(context.Background())
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Contact{UserID: ana.ID, Name: "Mia", Phone: "+15550000001", Birthday: date(1990, time.June, 15)}).Error)
	require.NoError(t, db.Create(&models.Contact{UserID: ben.ID, Name: "Tom", Phone: "+15550000002", Anniversary: date(2012, time.June, 15)}).Error)

	sender := new(MockSMSSender)
	sender.On("Send", mock.Anything, "+15550000001", "🎂 Happy Birthday Mia!").Return(nil).Once()
	sender.On("Send", mock.Anything, "+15550000002", "💍 Happy Anniversary Tom!").Return(nil).Once()

	svc := NewGreetingService(store, store, sender, zap.NewNop(), WithClock(june15))
	require.NoError(t, svc.RunDailyTick(context.Background()))
	sender.AssertExpectations(t)
}
