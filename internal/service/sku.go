package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/juanbracho/girasoulresale/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	skuPrefix      = "GS"
	skuMaxAttempts = 5
)

// newSKUCandidate builds a timestamp+random composite SKU.
func newSKUCandidate(now time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", skuPrefix, now.Format("20060102150405"), rand.Intn(10000))
}

// fallbackSKU returns a UUID-derived token, used once the bounded probe loop
// is exhausted. Collisions are not re-checked; the unique index on sku is the
// final arbiter either way.
func fallbackSKU() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", skuPrefix, raw[:16])
}

// generateSKU probes candidates against the store until one is free, with a
// UUID fallback after skuMaxAttempts. The caller's insert still runs against
// the unique index, so a racing create surfaces as a duplicate-key error
// there rather than here.
func generateSKU(tx *gorm.DB, now time.Time) (string, error) {
	for attempt := 0; attempt < skuMaxAttempts; attempt++ {
		candidate := newSKUCandidate(now)
		var count int64
		if err := tx.Model(&models.InventoryItem{}).Where("sku = ?", candidate).Count(&count).Error; err != nil {
			return "", fmt.Errorf("probe sku: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return fallbackSKU(), nil
}
