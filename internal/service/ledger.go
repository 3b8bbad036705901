package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/fittrack/internal/crypto/vaultcrypto"
	"github.com/and161185/fittrack/internal/errs"
	"github.com/and161185/fittrack/internal/model"
	"github.com/and161185/fittrack/internal/storage"
)

// Ledger owns one account's four record collections and derives display
// aggregates from them. It is session-scoped: OpenLedger loads the whole
// working set for the session's account, and switching accounts means
// discarding the Ledger and opening a new one. No state is shared between
// instances.
//
// Every mutation re-persists all four collections before returning, so the
// stored state always matches the working set.
type Ledger struct {
	store storage.Store
	ns    string
	dek   []byte
	log   *zap.Logger
	now   func() time.Time

	weights  []model.WeightEntry
	meals    []model.MealPlan
	workouts []model.WorkoutSession
	plans    []model.WorkoutPlan
}

// OpenLedger loads the session account's collections from the store.
// Absent collections start empty; sealed blobs that fail to open surface
// an error rather than silently dropping data.
func OpenLedger(ctx context.Context, st storage.Store, sess model.Session, log *zap.Logger) (*Ledger, error) {
	if sess.Email == "" {
		return nil, errs.ErrNoSession
	}
	if log == nil {
		log = zap.NewNop()
	}
	l := &Ledger{
		store: st,
		ns:    storage.Namespace(sess.Email),
		dek:   sess.DEK,
		log:   log,
		now:   time.Now,
	}
	if err := l.loadCollection(ctx, storage.CollectionWeights, &l.weights); err != nil {
		return nil, err
	}
	if err := l.loadCollection(ctx, storage.CollectionMeals, &l.meals); err != nil {
		return nil, err
	}
	if err := l.loadCollection(ctx, storage.CollectionWorkouts, &l.workouts); err != nil {
		return nil, err
	}
	if err := l.loadCollection(ctx, storage.CollectionPlans, &l.plans); err != nil {
		return nil, err
	}
	log.Debug("ledger opened",
		zap.String("namespace", l.ns),
		zap.Int("weights", len(l.weights)),
		zap.Int("meals", len(l.meals)),
		zap.Int("workouts", len(l.workouts)),
		zap.Int("plans", len(l.plans)),
	)
	return l, nil
}

func (l *Ledger) loadCollection(ctx context.Context, name string, out any) error {
	blob, err := l.store.Get(ctx, storage.Key(l.ns, name))
	if errors.Is(err, errs.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	plain, err := vaultcrypto.OpenCollection(l.dek, l.ns, name, blob)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plain, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// persist seals and writes all four collections.
func (l *Ledger) persist(ctx context.Context) error {
	for _, c := range []struct {
		name string
		data any
	}{
		{storage.CollectionWeights, l.weights},
		{storage.CollectionMeals, l.meals},
		{storage.CollectionWorkouts, l.workouts},
		{storage.CollectionPlans, l.plans},
	} {
		plain, err := json.Marshal(c.data)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.name, err)
		}
		blob, err := vaultcrypto.SealCollection(l.dek, l.ns, c.name, plain)
		if err != nil {
			return err
		}
		if err := l.store.Set(ctx, storage.Key(l.ns, c.name), blob); err != nil {
			return fmt.Errorf("persist %s: %w", c.name, err)
		}
	}
	l.log.Debug("ledger persisted", zap.String("namespace", l.ns))
	return nil
}

// round1 rounds to one decimal (weight deltas, weekly averages, macros).
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// round2 rounds to two decimals (run distance).
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
