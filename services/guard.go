package services

import (
	"context"
	"fmt"
	"time"

	"celebrato-backend/models"
	"celebrato-backend/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DeliveryGuard records which greetings were already dispatched on a day.
type DeliveryGuard interface {
	// Claim atomically marks (contact, category, day) as sent. It returns
	// false when the tuple was already claimed.
	Claim(ctx context.Context, contactID uuid.UUID, category models.Category, day time.Time) (bool, error)
	// Release drops a claim so a later tick may retry the send.
	Release(ctx context.Context, contactID uuid.UUID, category models.Category, day time.Time) error
}

// NoopDeliveryGuard never deduplicates: a rerun on the same day re-sends.
type NoopDeliveryGuard struct{}

func (NoopDeliveryGuard) Claim(context.Context, uuid.UUID, models.Category, time.Time) (bool, error) {
	return true, nil
}

func (NoopDeliveryGuard) Release(context.Context, uuid.UUID, models.Category, time.Time) error {
	return nil
}

const deliveryClaimTTL = 48 * time.Hour

// RedisDeliveryGuard keeps claims as expiring SETNX keys.
type RedisDeliveryGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDeliveryGuard(client *redis.Client) *RedisDeliveryGuard {
	return &RedisDeliveryGuard{client: client, ttl: deliveryClaimTTL}
}

func deliveryKey(contactID uuid.UUID, category models.Category, day time.Time) string {
	return fmt.Sprintf("greeting:sent:%s:%s:%s", contactID, category, utils.DayKey(day))
}

func (g *RedisDeliveryGuard) Claim(ctx context.Context, contactID uuid.UUID, category models.Category, day time.Time) (bool, error) {
	return g.client.SetNX(ctx, deliveryKey(contactID, category, day), time.Now().Unix(), g.ttl).Result()
}

func (g *RedisDeliveryGuard) Release(ctx context.Context, contactID uuid.UUID, category models.Category, day time.Time) error {
	return g.client.Del(ctx, deliveryKey(contactID, category, day)).Err()
}
