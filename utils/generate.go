package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber produces a human-readable order identifier:
// "ORD" + timestamp to second precision + a zero-padded random suffix,
// e.g. "ORD20240115143022047". Uniqueness is practical, not guaranteed:
// a collision needs two orders in the same second drawing the same
// suffix out of 1000.
func GenerateOrderNumber() string {
	timestamp := time.Now().Format("20060102150405")
	return fmt.Sprintf("ORD%s%03d", timestamp, rand.Intn(1000))
}
