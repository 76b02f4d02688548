package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segyhp/rental-engine/internal/domain"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReservationCache stores reservation views in Redis under reservation:<id>
type ReservationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReservationCache(client *redis.Client, ttl time.Duration) *ReservationCache {
	return &ReservationCache{client: client, ttl: ttl}
}

func reservationKey(id uuid.UUID) string {
	return fmt.Sprintf("reservation:%s", id)
}

// Get returns (nil, nil) on a miss
func (c *ReservationCache) Get(ctx context.Context, id uuid.UUID) (*domain.ReservationResponse, error) {
	data, err := c.client.Get(ctx, reservationKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var reservation domain.ReservationResponse
	if err := json.Unmarshal(data, &reservation); err != nil {
		return nil, fmt.Errorf("decode cached reservation: %w", err)
	}
	return &reservation, nil
}

func (c *ReservationCache) Set(ctx context.Context, reservation *domain.ReservationResponse) error {
	data, err := json.Marshal(reservation)
	if err != nil {
		return fmt.Errorf("encode reservation: %w", err)
	}
	return c.client.Set(ctx, reservationKey(reservation.ID), data, c.ttl).Err()
}

func (c *ReservationCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, reservationKey(id)).Err()
}
