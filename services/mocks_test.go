package services

import (
	"context"
	"sync"

	"celebrato-backend/models"

	"github.com/stretchr/testify/mock"
)

type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) Send(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

// memoryStore serves fixed contacts and templates.
type memoryStore struct {
	mu          sync.Mutex
	contacts    []models.Contact
	templates   []models.MessageTemplate
	contactErr  error
	templateErr error
	listCalls   map[models.Category]int
}

func (m *memoryStore) ListAllContacts(ctx context.Context) ([]models.Contact, error) {
	if m.contactErr != nil {
		return nil, m.contactErr
	}
	return m.contacts, nil
}

func (m *memoryStore) ListTemplatesByCategory(ctx context.Context, category models.Category) ([]models.MessageTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listCalls == nil {
		m.listCalls = make(map[models.Category]int)
	}
	m.listCalls[category]++
	if m.templateErr != nil {
		return nil, m.templateErr
	}
	var out []models.MessageTemplate
	for _, t := range m.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out, nil
}
