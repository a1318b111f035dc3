package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopadmin/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService fronts hot reads with redis. Callers treat every error as a
// cache miss; a broken cache must never fail a request.
type CacheService interface {
	GetInventory(ctx context.Context, productID uuid.UUID) (*models.Inventory, error)
	SetInventory(ctx context.Context, inventory *models.Inventory, ttl time.Duration) error
	DeleteInventory(ctx context.Context, productID uuid.UUID) error

	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func inventoryKey(productID uuid.UUID) string {
	return fmt.Sprintf("shopadmin:inventory:%s", productID)
}

func (r *redisCacheService) GetInventory(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	inventory := &models.Inventory{}
	found, err := r.GetJSON(ctx, inventoryKey(productID), inventory)
	if err != nil || !found {
		return nil, err
	}
	return inventory, nil
}

func (r *redisCacheService) SetInventory(ctx context.Context, inventory *models.Inventory, ttl time.Duration) error {
	return r.SetJSON(ctx, inventoryKey(inventory.ProductID), inventory, ttl)
}

func (r *redisCacheService) DeleteInventory(ctx context.Context, productID uuid.UUID) error {
	return r.Delete(ctx, inventoryKey(productID))
}

func (r *redisCacheService) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
