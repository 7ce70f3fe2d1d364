package utils

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// GenerateBookingCode returns a human-facing code like YY-2026-042.
// The space is only 999 codes per year, so callers must rely on the
// storage uniqueness constraint and retry on collision.
func GenerateBookingCode(now time.Time) string {
	return fmt.Sprintf("YY-%d-%03d", now.Year(), rand.IntN(999)+1)
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateTransactionID mimics the mobile money provider reference format.
func GenerateTransactionID(prefix string, now time.Time) string {
	var sb strings.Builder
	for i := 0; i < 9; i++ {
		sb.WriteByte(base36[rand.IntN(len(base36))])
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), sb.String())
}

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
