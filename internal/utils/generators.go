package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateID() string {
	return uuid.New().String()
}

// GenerateReceipt builds the gateway receipt reference for an order.
func GenerateReceipt(now time.Time) string {
	return fmt.Sprintf("receipt_%d", UnixMillis(now))
}
