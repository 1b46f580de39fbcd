package services

import (
	"context"
	"testing"
	"time"

	"celebrato-backend/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGuard(t *testing.T) (*RedisDeliveryGuard, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisDeliveryGuard(client), mr
}

func TestRedisDeliveryGuard_ClaimOncePerDay(t *testing.T) {
	guard, _ := setupGuard(t)
	ctx := context.Background()
	id := uuid.New()
	day := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.Local)

	ok, err := guard.Claim(ctx, id, models.CategoryBirthday, day)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.Claim(ctx, id, models.CategoryBirthday, day.Add(3*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok, "same day must not be claimed twice")

	ok, err = guard.Claim(ctx, id, models.CategoryAnniversary, day)
	require.NoError(t, err)
	assert.True(t, ok, "category is part of the key")

	ok, err = guard.Claim(ctx, id, models.CategoryBirthday, day.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.True(t, ok, "next year is a new day")
}

func TestRedisDeliveryGuard_Release(t *testing.T) {
	guard, _ := setupGuard(t)
	ctx := context.Background()
	id := uuid.New()
	day := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.Local)

	ok, _ := guard.Claim(ctx, id, models.CategoryBirthday, day)
	require.True(t, ok)
	require.NoError(t, guard.Release(ctx, id, models.CategoryBirthday, day))

	ok, err := guard.Claim(ctx, id, models.CategoryBirthday, day)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisDeliveryGuard_ClaimsExpire(t *testing.T) {
	guard, mr := setupGuard(t)
	ctx := context.Background()
	id := uuid.New()
	day := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.Local)

	ok, _ := guard.Claim(ctx, id, models.CategoryBirthday, day)
	require.True(t, ok)
	assert.True(t, mr.Exists(deliveryKey(id, models.CategoryBirthday, day)))

	mr.FastForward(deliveryClaimTTL + time.Second)
	assert.False(t, mr.Exists(deliveryKey(id, models.CategoryBirthday, day)))
}

func TestDeliveryKey(t *testing.T) {
	id := uuid.MustParse("6f1c5c52-0000-4000-8000-000000000001")
	day := time.Date(2025, time.June, 5, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "greeting:sent:6f1c5c52-0000-4000-8000-000000000001:birthday:2025-06-05",
		deliveryKey(id, models.CategoryBirthday, day))
}

func TestNoopDeliveryGuard(t *testing.T) {
	var guard NoopDeliveryGuard
	for i := 0; i < 3; i++ {
		ok, err := guard.Claim(context.Background(), uuid.Nil, models.CategoryBirthday, time.Now())
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
