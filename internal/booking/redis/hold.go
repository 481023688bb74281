package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

const holdKeyPrefix = "payment_hold:"

var ErrHoldExists = errors.New("payment hold already exists")

// Holds stores one record per open gateway order, expiring after TTL.
type Holds struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *logger.Logger
}

func NewHolds(client *redis.Client, ttl time.Duration, log *logger.Logger) *Holds {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Holds{Client: client, TTL: ttl, Logger: log}
}

func holdKey(orderID string) string {
	return holdKeyPrefix + orderID
}

// SaveHold records hold unless one already exists for the order.
func (h *Holds) SaveHold(ctx context.Context, hold models.PaymentHold) error {
	data, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("encoding hold: %w", err)
	}
	ok, err := h.Client.SetNX(ctx, holdKey(hold.OrderID), data, h.TTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrHoldExists
	}
	h.Logger.Debug("REDIS", fmt.Sprintf("Hold saved for order %s (ttl %s)", hold.OrderID, h.TTL))
	return nil
}

// GetHold returns nil without error when no hold exists.
func (h *Holds) GetHold(ctx context.Context, orderID string) (*models.PaymentHold, error) {
	val, err := h.Client.Get(ctx, holdKey(orderID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var hold models.PaymentHold
	if err := json.Unmarshal(val, &hold); err != nil {
		return nil, fmt.Errorf("decoding hold %s: %w", orderID, err)
	}
	return &hold, nil
}

// ReleaseHold deletes the hold if it belongs to userID.
func (h *Holds) ReleaseHold(ctx context.Context, orderID, userID string) error {
	hold, err := h.GetHold(ctx, orderID)
	if err != nil || hold == nil {
		return err
	}
	if hold.UserID != userID {
		return nil
	}
	return h.Client.Del(ctx, holdKey(orderID)).Err()
}
