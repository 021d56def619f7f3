// Package rotation picks one catalog entry per calendar day.
//
// The pick is a pure function of the day key, so every device shows the
// same tip on the same day without coordination. The only state is the
// previous day's pick, used to avoid showing the same entry twice in a row.
package rotation

import (
	"context"
	"hash/fnv"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/kvstore"
	"github.com/ecolife/ecolife-cli/internal/logger"
	"github.com/ecolife/ecolife-cli/internal/models"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

// Seed returns the 32-bit FNV-1a hash of "tip:" + dayKey.
func Seed(dayKey string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(constants.TipSeedPrefix + dayKey))
	return h.Sum32()
}

// PickOfDay returns the catalog index for dayKey. When hasPrevious is set
// and the candidate equals previous, the next index (wrapping) is used.
// It panics if catalogLen is not positive.
func PickOfDay(catalogLen int, dayKey string, previous int, hasPrevious bool) int {
	if catalogLen <= 0 {
		panic("rotation: empty catalog")
	}
	candidate := int(Seed(dayKey) % uint32(catalogLen))
	if hasPrevious && candidate == previous {
		return (candidate + 1) % catalogLen
	}
	return candidate
}

// Cache remembers each user's pick in local storage so the no-repeat rule
// can see yesterday's choice.
type Cache struct {
	kv kvstore.Store
}

func NewCache(kv kvstore.Store) *Cache {
	return &Cache{kv: kv}
}

func cacheKey(userID string) string {
	return constants.KeyTipOfDay + userID
}

// Today returns the pick for today. A cached pick for today is reused; a
// cached pick for yesterday feeds the no-repeat rule. Storage failures
// fall back to the uncached pick.
func (c *Cache) Today(ctx context.Context, userID, today string, catalogLen int) int {
	var cached models.TipPick
	found := false
	if c != nil && c.kv != nil {
		var err error
		found, err = c.kv.Get(ctx, cacheKey(userID), &cached)
		if err != nil {
			logger.Warn("Tip cache read failed", "error", err)
			found = false
		}
	}

	if found && cached.Day == today && cached.Index >= 0 && cached.Index < catalogLen {
		return cached.Index
	}

	hasPrevious := false
	if found {
		if yesterday, err := utils.AddDays(today, -1); err == nil && cached.Day == yesterday {
			hasPrevious = true
		}
	}

	index := PickOfDay(catalogLen, today, cached.Index, hasPrevious)

	if c != nil && c.kv != nil {
		if err := c.kv.Set(ctx, cacheKey(userID), models.TipPick{Day: today, Index: index}); err != nil {
			logger.Warn("Tip cache write failed", "error", err)
		}
	}
	return index
}
