// Package tracker ties the record store, statistics, and content pickers
// together into the operations the CLI and TUI expose.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/content"
	apperrors "github.com/ecolife/ecolife-cli/internal/errors"
	"github.com/ecolife/ecolife-cli/internal/kvstore"
	"github.com/ecolife/ecolife-cli/internal/logger"
	"github.com/ecolife/ecolife-cli/internal/models"
	"github.com/ecolife/ecolife-cli/internal/proofs"
	"github.com/ecolife/ecolife-cli/internal/rotation"
	"github.com/ecolife/ecolife-cli/internal/shufflebag"
	"github.com/ecolife/ecolife-cli/internal/stats"
	"github.com/ecolife/ecolife-cli/internal/storage"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

// Earliest day fetched when the streak lookback is unbounded.
const unboundedFrom = "1970-01-01"

// Content pickers fall back to this key when nobody is signed in.
const anonymousUser = "anonymous"

type Options struct {
	Timezone       string
	StreakLookback int
	// Now overrides the clock, for tests.
	Now func() time.Time
}

type Service struct {
	store    *storage.Adapter
	proofs   proofs.Store
	tips     *rotation.Cache
	facts    *shufflebag.Bag
	timezone string
	lookback int
	now      func() time.Time
}

func New(store *storage.Adapter, kv kvstore.Store, proofStore proofs.Store, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:    store,
		proofs:   proofStore,
		tips:     rotation.NewCache(kv),
		facts:    shufflebag.New(kv, len(content.Facts()), constants.FactsBatchSize, nil),
		timezone: opts.Timezone,
		lookback: opts.StreakLookback,
		now:      now,
	}
}

// Today returns today's key in the configured timezone.
func (s *Service) Today() string {
	return utils.ToKeyInZone(s.now(), s.timezone)
}

// Resolve turns an optional user-supplied day into a key. "" is today
// and RFC 3339 timestamps are converted in the configured timezone.
func (s *Service) Resolve(day string) (string, error) {
	if day == "" {
		return s.Today(), nil
	}
	key, err := utils.KeyFromValue(day, s.location())
	if err != nil {
		return "", apperrors.InvalidDay(day)
	}
	return key, nil
}

func (s *Service) location() *time.Location {
	loc, err := utils.LoadLocation(s.timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Overview is everything the dashboard shows.
type Overview struct {
	Today           string
	Record          models.DayRecord
	EcoStreak       stats.Streak
	ChallengeStreak stats.Streak
	Week            []stats.Slot
	WeekSummary     stats.Summary
	TipIndex        int
	Tip             models.Tip
}

// fetchFrom returns the first day that must be loaded to cover both the
// streak lookback (plus the day before it, to tell a capped run from an
// exact one) and a window of length days ending today.
func (s *Service) fetchFrom(today string, window int) (string, error) {
	if s.lookback <= 0 {
		return unboundedFrom, nil
	}
	span := s.lookback + 1
	if window > span {
		span = window
	}
	return utils.AddDays(today, -(span - 1))
}

func (s *Service) load(ctx context.Context, window int) (string, map[string]models.DayRecord, error) {
	today := s.Today()
	from, err := s.fetchFrom(today, window)
	if err != nil {
		return "", nil, err
	}
	records, err := s.store.GetRange(ctx, from, today)
	if err != nil {
		return "", nil, err
	}
	return today, stats.Index(records), nil
}

// Overview loads the dashboard in a single range query.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	today, index, err := s.load(ctx, constants.WeekWindow)
	if err != nil {
		return Overview{}, err
	}

	week, err := stats.BuildWindow(index, today, constants.WeekWindow)
	if err != nil {
		return Overview{}, err
	}

	ov := Overview{
		Today:           today,
		Record:          models.DayRecord{Day: today},
		EcoStreak:       stats.CurrentStreak(index, constants.FlagEco, today, s.lookback),
		ChallengeStreak: stats.CurrentStreak(index, constants.FlagChallenge, today, s.lookback),
		Week:            week,
		WeekSummary:     stats.Summarize(week),
	}
	if rec, ok := index[today]; ok {
		ov.Record = rec
	}
	ov.TipIndex, ov.Tip = s.TipOfDay(ctx, today)
	return ov, nil
}

// Streaks returns the current eco and challenge streaks.
func (s *Service) Streaks(ctx context.Context) (eco, challenge stats.Streak, err error) {
	today, index, err := s.load(ctx, 1)
	if err != nil {
		return stats.Streak{}, stats.Streak{}, err
	}
	return stats.CurrentStreak(index, constants.FlagEco, today, s.lookback),
		stats.CurrentStreak(index, constants.FlagChallenge, today, s.lookback), nil
}

// Window returns length slots ending today with their summary.
func (s *Service) Window(ctx context.Context, length int) ([]stats.Slot, stats.Summary, error) {
	if length <= 0 {
		return nil, stats.Summary{}, fmt.Errorf("window length must be positive, got %d", length)
	}
	today := s.Today()
	from, err := utils.AddDays(today, -(length - 1))
	if err != nil {
		return nil, stats.Summary{}, err
	}
	records, err := s.store.GetRange(ctx, from, today)
	if err != nil {
		return nil, stats.Summary{}, err
	}
	slots, err := stats.BuildWindow(stats.Index(records), today, length)
	if err != nil {
		return nil, stats.Summary{}, err
	}
	return slots, stats.Summarize(slots), nil
}

// MarkRequest sets or clears one activity for a day.
type MarkRequest struct {
	Day       string // "" for today
	Kind      constants.ProofKind
	Done      bool
	ProofPath string
	Note      *string
}

// MarkResult reports the stored record. ProofErr is set when a photo was
// requested but could not be uploaded; the record is saved regardless.
type MarkResult struct {
	Record   models.DayRecord
	ProofRef string
	ProofErr error
}

func (s *Service) Mark(ctx context.Context, req MarkRequest) (MarkResult, error) {
	day, err := s.Resolve(req.Day)
	if err != nil {
		return MarkResult{}, err
	}
	userID, err := s.store.UserID()
	if err != nil {
		return MarkResult{}, err
	}

	var res MarkResult
	if req.ProofPath != "" && req.Done {
		if s.proofs == nil {
			res.ProofErr = fmt.Errorf("no proof storage configured")
		} else {
			ref, err := proofs.UploadFile(ctx, s.proofs, userID, day, req.Kind, req.ProofPath)
			if err != nil {
				res.ProofErr = err
			} else {
				res.ProofRef = ref
			}
		}
		if res.ProofErr != nil {
			logger.Warn("Proof upload failed, saving without photo", "day", day, "kind", req.Kind, "error", res.ProofErr)
		}
	}

	patch := models.DayRecordPatch{Day: day}
	switch req.Kind {
	case constants.ProofEco:
		patch.EcoDone = models.Bool(req.Done)
		if res.ProofRef != "" {
			patch.EcoProofRef = models.String(res.ProofRef)
		}
	case constants.ProofChallenge:
		patch.ChallengeDone = models.Bool(req.Done)
		if res.ProofRef != "" {
			patch.ChallengeProofRef = models.String(res.ProofRef)
		}
		patch.ChallengeNote = req.Note
	default:
		return MarkResult{}, fmt.Errorf("unknown activity %q", req.Kind)
	}

	rec, err := s.store.UpsertDay(ctx, patch)
	if err != nil {
		return MarkResult{}, err
	}
	res.Record = rec
	logger.Info("Marked activity", "day", day, "kind", req.Kind, "done", req.Done, "proof", res.ProofRef != "")
	return res, nil
}

// Day returns the record for day ("" for today), or an empty record.
func (s *Service) Day(ctx context.Context, day string) (models.DayRecord, bool, error) {
	day, err := s.Resolve(day)
	if err != nil {
		return models.DayRecord{}, false, err
	}
	rec, err := s.store.GetDay(ctx, day)
	if err != nil {
		return models.DayRecord{}, false, err
	}
	if rec == nil {
		return models.DayRecord{Day: day}, false, nil
	}
	return *rec, true, nil
}

// History returns stored records from the last days days, newest first.
func (s *Service) History(ctx context.Context, days int) ([]models.DayRecord, error) {
	if days <= 0 {
		days = constants.DefaultHistoryDays
	}
	today := s.Today()
	from, err := utils.AddDays(today, -(days - 1))
	if err != nil {
		return nil, err
	}
	records, err := s.store.GetRange(ctx, from, today)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Delete removes the record for day.
func (s *Service) Delete(ctx context.Context, day string) error {
	if !utils.IsValidKey(day) {
		return apperrors.InvalidDay(day)
	}
	if err := s.store.DeleteDay(ctx, day); err != nil {
		return err
	}
	logger.Info("Deleted day record", "day", day)
	return nil
}

func (s *Service) contentUser() string {
	if id, err := s.store.UserID(); err == nil {
		return id
	}
	return anonymousUser
}

// TipOfDay returns the tip for day. Today's pick is cached per user so
// the next day can avoid repeating it; other days are computed directly.
func (s *Service) TipOfDay(ctx context.Context, day string) (int, models.Tip) {
	n := len(content.Tips())
	var idx int
	if day == s.Today() {
		idx = s.tips.Today(ctx, s.contentUser(), day, n)
	} else {
		idx = rotation.PickOfDay(n, day, 0, false)
	}
	return idx, content.Tip(idx)
}

// NextFacts serves the next batch of facts.
func (s *Service) NextFacts(ctx context.Context) []models.Fact {
	return factsFor(s.facts.Next(ctx, s.contentUser()))
}

// LastFacts returns the batch served most recently, if any.
func (s *Service) LastFacts(ctx context.Context) ([]models.Fact, bool) {
	idx, ok := s.facts.Last(ctx, s.contentUser())
	if !ok {
		return nil, false
	}
	return factsFor(idx), true
}

// ResetFacts forgets the facts already served so every fact can come
// up again.
func (s *Service) ResetFacts(ctx context.Context) error {
	return s.facts.Reset(ctx, s.contentUser())
}

func factsFor(idx []int) []models.Fact {
	out := make([]models.Fact, len(idx))
	for i, n := range idx {
		out[i] = content.Fact(n)
	}
	return out
}
