package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"celebrato-backend/models"

	"go.uber.org/zap"
)

const defaultDispatchTimeout = 15 * time.Second

// GreetingService runs the daily greeting cycle and the on-demand test send.
type GreetingService struct {
	contacts  ContactStore
	templates TemplateStore
	sender    SMSSender
	guard     DeliveryGuard
	clock     Clock
	log       *zap.Logger

	dailySelector TemplateSelector
	testSelector  TemplateSelector

	dispatchTimeout time.Duration
}

type GreetingOption func(*GreetingService)

func WithClock(c Clock) GreetingOption {
	return func(s *GreetingService) { s.clock = c }
}

func WithDeliveryGuard(g DeliveryGuard) GreetingOption {
	return func(s *GreetingService) { s.guard = g }
}

func WithDispatchTimeout(d time.Duration) GreetingOption {
	return func(s *GreetingService) {
		if d > 0 {
			s.dispatchTimeout = d
		}
	}
}

// WithTestSelector replaces the random policy used by SendTestMessage.
func WithTestSelector(sel TemplateSelector) GreetingOption {
	return func(s *GreetingService) { s.testSelector = sel }
}

func NewGreetingService(contacts ContactStore, templates TemplateStore, sender SMSSender, log *zap.Logger, opts ...GreetingOption) *GreetingService {
	s := &GreetingService{
		contacts:        contacts,
		templates:       templates,
		sender:          sender,
		guard:           NoopDeliveryGuard{},
		clock:           RealClock{},
		log:             log,
		dailySelector:   FirstTemplate,
		testSelector:    RandomTemplate,
		dispatchTimeout: defaultDispatchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunDailyTick greets every contact whose birthday or anniversary is today.
// Per-contact failures are logged and skipped; only storage failures abort
// the tick and are returned.
func (s *GreetingService) RunDailyTick(ctx context.Context) error {
	now := s.clock.Now()
	month, day := now.Month(), now.Day()
	log := s.log.With(zap.String("day", now.Format("01-02")))
	log.Info("running daily greeting tick")

	contacts, err := s.contacts.ListAllContacts(ctx)
	if err != nil {
		return fmt.Errorf("%w: list contacts: %w", ErrDataAccess, err)
	}

	pool := make(map[models.Category][]models.MessageTemplate)
	var sent, failed, skipped int

	for i := range contacts {
		contact := &contacts[i]
		category, ok := Classify(contact, month, day)
		if !ok {
			continue
		}

		templates, loaded := pool[category]
		if !loaded {
			templates, err = s.templates.ListTemplatesByCategory(ctx, category)
			if err != nil {
				return fmt.Errorf("%w: list %s templates: %w", ErrDataAccess, category, err)
			}
			pool[category] = templates
		}

		template, ok := s.dailySelector(templates)
		if !ok {
			log.Warn("no template for category, skipping contact",
				zap.String("contact_id", contact.ID.String()),
				zap.String("category", string(category)))
			skipped++
			continue
		}

		if err := s.greet(ctx, log, contact, category, template, now); err != nil {
			if errors.Is(err, errAlreadySent) {
				skipped++
				continue
			}
			log.Error("failed to send greeting",
				zap.String("contact_id", contact.ID.String()),
				zap.String("category", string(category)),
				zap.Error(err))
			failed++
			continue
		}
		sent++
	}

	log.Info("daily greeting tick completed",
		zap.Int("contacts", len(contacts)),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped))
	return nil
}

var errAlreadySent = errors.New("greeting already sent today")

func (s *GreetingService) greet(ctx context.Context, log *zap.Logger, contact *models.Contact, category models.Category, template models.MessageTemplate, now time.Time) error {
	claimed, err := s.guard.Claim(ctx, contact.ID, category, now)
	if err != nil {
		// an unreachable guard must not stop greetings
		log.Warn("delivery guard unavailable, sending anyway", zap.Error(err))
		claimed = true
	}
	if !claimed {
		return errAlreadySent
	}

	body := RenderMessage(template.Content, contact.Name)
	if err := s.dispatch(ctx, contact.Phone, body); err != nil {
		// a timed out send may still be delivered, so its claim is kept
		if errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if relErr := s.guard.Release(ctx, contact.ID, category, now); relErr != nil {
			log.Warn("failed to release delivery claim", zap.Error(relErr))
		}
		return err
	}
	return nil
}

// SendTestMessage sends a randomly chosen template of category to phone.
func (s *GreetingService) SendTestMessage(ctx context.Context, phone, category string) (bool, error) {
	cat := models.Category(category)
	if !cat.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	templates, err := s.templates.ListTemplatesByCategory(ctx, cat)
	if err != nil {
		return false, fmt.Errorf("%w: list %s templates: %w", ErrDataAccess, cat, err)
	}

	template, ok := s.testSelector(templates)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrTemplateNotFound, cat)
	}

	if err := s.dispatch(ctx, phone, RenderMessage(template.Content, "")); err != nil {
		return false, err
	}
	s.log.Info("test message sent",
		zap.String("category", string(cat)),
		zap.String("template_id", template.ID.String()))
	return true, nil
}

func (s *GreetingService) dispatch(ctx context.Context, to, body string) error {
	ctx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	if err := s.sender.Send(ctx, to, body); err != nil {
		return fmt.Errorf("%w: %w", ErrTransportFailure, err)
	}
	return nil
}
