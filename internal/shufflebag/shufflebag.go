// Package shufflebag serves catalog entries in batches without repeats
// until every entry has been shown, then starts a fresh shuffled cycle.
package shufflebag

import (
	"context"
	"math/rand/v2"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/kvstore"
	"github.com/ecolife/ecolife-cli/internal/logger"
	"github.com/ecolife/ecolife-cli/internal/models"
)

// Shuffle returns a Fisher-Yates permutation of 0..n-1.
// A nil rng uses the global source.
func Shuffle(n int, rng *rand.Rand) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func usable(queue []int, catalogSize, batchSize int) bool {
	if len(queue) < batchSize {
		return false
	}
	for _, idx := range queue {
		if idx < 0 || idx >= catalogSize {
			return false
		}
	}
	return true
}

// PickNext takes batchSize indices off the front of queue, reshuffling
// first if the queue cannot supply a full batch of valid indices.
// batchSize is clamped to catalogSize. Non-positive sizes panic.
func PickNext(catalogSize, batchSize int, queue []int, rng *rand.Rand) (picked, remaining []int) {
	if catalogSize <= 0 || batchSize <= 0 {
		panic("shufflebag: catalog and batch sizes must be positive")
	}
	if batchSize > catalogSize {
		batchSize = catalogSize
	}

	if !usable(queue, catalogSize, batchSize) {
		queue = Shuffle(catalogSize, rng)
	}

	picked = append([]int(nil), queue[:batchSize]...)
	remaining = append([]int{}, queue[batchSize:]...)
	return picked, remaining
}

// Bag persists each user's queue and last batch in local storage.
type Bag struct {
	kv          kvstore.Store
	catalogSize int
	batchSize   int
	rng         *rand.Rand
}

// New returns a Bag over a catalog of catalogSize entries. A nil rng uses
// the global source.
func New(kv kvstore.Store, catalogSize, batchSize int, rng *rand.Rand) *Bag {
	if batchSize <= 0 {
		batchSize = constants.FactsBatchSize
	}
	return &Bag{kv: kv, catalogSize: catalogSize, batchSize: batchSize, rng: rng}
}

func queueKey(userID string) string { return constants.KeyFactsQueue + userID }
func lastKey(userID string) string  { return constants.KeyFactsLast + userID }

// Next serves the next batch for userID. Storage failures start a fresh
// bag rather than failing.
func (b *Bag) Next(ctx context.Context, userID string) []int {
	var state models.BagState
	if b.kv != nil {
		if _, err := b.kv.Get(ctx, queueKey(userID), &state); err != nil {
			logger.Warn("Facts queue read failed, starting a fresh bag", "error", err)
			state = models.BagState{}
		}
	}

	picked, remaining := PickNext(b.catalogSize, b.batchSize, state.Queue, b.rng)

	if b.kv != nil {
		if err := b.kv.Set(ctx, queueKey(userID), models.BagState{Queue: remaining}); err != nil {
			logger.Warn("Facts queue write failed", "error", err)
		}
		if err := b.kv.Set(ctx, lastKey(userID), picked); err != nil {
			logger.Warn("Facts batch write failed", "error", err)
		}
	}
	return picked
}

// Last returns the most recently served batch, if any.
func (b *Bag) Last(ctx context.Context, userID string) ([]int, bool) {
	if b.kv == nil {
		return nil, false
	}
	var last []int
	found, err := b.kv.Get(ctx, lastKey(userID), &last)
	if err != nil {
		logger.Warn("Facts batch read failed", "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	for _, idx := range last {
		if idx < 0 || idx >= b.catalogSize {
			return nil, false
		}
	}
	return last, true
}

// Reset discards the user's queue so the next call reshuffles.
func (b *Bag) Reset(ctx context.Context, userID string) error {
	if b.kv == nil {
		return nil
	}
	if err := b.kv.Delete(ctx, queueKey(userID)); err != nil {
		return err
	}
	return b.kv.Delete(ctx, lastKey(userID))
}
