package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

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

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== BOOKING CODE ====================

// GenerateBookingCode creates a human-readable booking code.
// Format: PREFIX-YYYYMMDD-HHMMSS-RANDOM
func GenerateBookingCode(prefix string) string {
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("%s-%s-%s-%s", prefix, datePart, timePart, randomPart)
}

// GeneratePaymentRef creates a provider transaction reference.
// Format: PAY-YYYYMMDDHHMMSS-RANDOM
func GeneratePaymentRef() string {
	now := time.Now()
	return fmt.Sprintf("PAY-%s-%06d", now.Format("20060102150405"), rand.Intn(1000000))
}
