package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/and161185/fittrack/internal/errs"
	"github.com/and161185/fittrack/internal/model"
)

// Default session names when the form leaves them blank.
const (
	defaultRunName  = "Run"
	defaultRestName = "Rest Day"
)

// ExerciseInput is the typed form input for one exercise row. Weight and
// Weights are mutually exclusive: a non-empty Weights list wins, and an
// invalid list (any entry not strictly positive) degrades to no load, the
// same way the form would refuse to record it.
type ExerciseInput struct {
	Name     string
	Sets     int
	Reps     model.Reps
	Weight   float64
	Weights  []float64
	RIR      string
	Note     string
	DropSets []model.DropSet
}

func (in ExerciseInput) toExercise() model.Exercise {
	load := model.FixedLoad(in.Weight)
	sets := in.Sets
	if len(in.Weights) > 0 {
		load = model.PerSetLoad(in.Weights)
		if load.IsPerSet() {
			// The per-set list defines the set count.
			sets = len(in.Weights)
		}
	}
	ex := model.Exercise{
		Name: strings.TrimSpace(in.Name),
		Sets: sets,
		Reps: in.Reps,
		Load: load,
		RIR:  strings.TrimSpace(in.RIR),
		Note: strings.TrimSpace(in.Note),
	}
	if len(in.DropSets) > 0 {
		ex.DropSets = make([]model.DropSet, len(in.DropSets))
		copy(ex.DropSets, in.DropSets)
	}
	return ex
}

// collectExercises converts inputs, dropping rows without a name
// (the form keeps empty rows around; they are not records).
func collectExercises(ins []ExerciseInput) []model.Exercise {
	var out []model.Exercise
	for _, in := range ins {
		ex := in.toExercise()
		if ex.Name != "" {
			out = append(out, ex)
		}
	}
	return out
}

// ParsePace parses a minutes-per-km pace: either a decimal ("5.5") or a
// minutes:seconds string ("5:30" → 5.5). Zero, negative and malformed
// paces are rejected.
func ParsePace(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: pace required", errs.ErrValidation)
	}
	if m, sec, ok := strings.Cut(s, ":"); ok {
		mins, err1 := strconv.Atoi(m)
		secs, err2 := strconv.Atoi(sec)
		if err1 != nil || err2 != nil || mins < 0 || secs < 0 || (mins == 0 && secs == 0) {
			return 0, fmt.Errorf("%w: malformed pace %q", errs.ErrValidation, s)
		}
		return float64(mins) + float64(secs)/60, nil
	}
	pace, err := strconv.ParseFloat(s, 64)
	if err != nil || pace <= 0 {
		return 0, fmt.Errorf("%w: malformed pace %q", errs.ErrValidation, s)
	}
	return pace, nil
}

// FormatPace renders a decimal minutes-per-km pace as "M:SS".
func FormatPace(pace float64) string {
	mins := int(pace)
	secs := int((pace-float64(mins))*60 + 0.5)
	if secs == 60 {
		mins, secs = mins+1, 0
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// CreateGymSession records a gym session. The name and at least one named
// exercise are required.
func (l *Ledger) CreateGymSession(ctx context.Context, day model.Day, name, notes string, exercises []ExerciseInput) (model.WorkoutSession, error) {
	if !day.Valid() {
		return model.WorkoutSession{}, fmt.Errorf("%w: valid date required", errs.ErrValidation)
	}
	name = strings.TrimSpace(name)
	exs := collectExercises(exercises)
	if name == "" || len(exs) == 0 {
		return model.WorkoutSession{}, fmt.Errorf("%w: session name and at least one exercise required", errs.ErrValidation)
	}

	s := model.WorkoutSession{
		ID:        model.NewID(),
		Day:       day,
		Name:      name,
		Notes:     strings.TrimSpace(notes),
		Type:      model.SessionGym,
		Exercises: exs,
	}
	l.workouts = append(l.workouts, s)
	if err := l.persist(ctx); err != nil {
		return model.WorkoutSession{}, err
	}
	return s, nil
}

// CreateRunSession records a run. Distance is derived from duration and
// pace and rounded to two decimals.
func (l *Ledger) CreateRunSession(ctx context.Context, day model.Day, name, notes string, durationMin float64, pace string) (model.WorkoutSession, error) {
	if !day.Valid() {
		return model.WorkoutSession{}, fmt.Errorf("%w: valid date required", errs.ErrValidation)
	}
	if durationMin <= 0 {
		return model.WorkoutSession{}, fmt.Errorf("%w: duration must be positive", errs.ErrValidation)
	}
	paceMin, err := ParsePace(pace)
	if err != nil {
		return model.WorkoutSession{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultRunName
	}

	s := model.WorkoutSession{
		ID:           model.NewID(),
		Day:          day,
		Name:         name,
		Notes:        strings.TrimSpace(notes),
		Type:         model.SessionRun,
		DurationMin:  durationMin,
		PaceMinPerKm: paceMin,
		DistanceKm:   round2(durationMin / paceMin),
	}
	l.workouts = append(l.workouts, s)
	if err := l.persist(ctx); err != nil {
		return model.WorkoutSession{}, err
	}
	return s, nil
}

// CreateRestSession records a rest day. Only the date is required.
func (l *Ledger) CreateRestSession(ctx context.Context, day model.Day, name, notes string) (model.WorkoutSession, error) {
	if !day.Valid() {
		return model.WorkoutSession{}, fmt.Errorf("%w: valid date required", errs.ErrValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultRestName
	}

	s := model.WorkoutSession{
		ID:    model.NewID(),
		Day:   day,
		Name:  name,
		Notes: strings.TrimSpace(notes),
		Type:  model.SessionRest,
	}
	l.workouts = append(l.workouts, s)
	if err := l.persist(ctx); err != nil {
		return model.WorkoutSession{}, err
	}
	return s, nil
}

// DeleteSession removes a session; deleting an unknown id is a no-op.
func (l *Ledger) DeleteSession(ctx context.Context, id string) error {
	kept := l.workouts[:0]
	for _, w := range l.workouts {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	if len(kept) == len(l.workouts) {
		return nil
	}
	l.workouts = kept
	return l.persist(ctx)
}

// Sessions returns all sessions newest-first; same-day sessions keep their
// insertion order.
func (l *Ledger) Sessions() []model.WorkoutSession {
	out := make([]model.WorkoutSession, len(l.workouts))
	copy(out, l.workouts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	return out
}

// PersonalRecords maps each exercise name to the heaviest weight ever
// recorded for it across all gym sessions. Exercises without a load
// contribute nothing.
func (l *Ledger) PersonalRecords() map[string]float64 {
	prs := make(map[string]float64)
	for _, w := range l.workouts {
		if w.Type != model.SessionGym {
			continue
		}
		for _, ex := range w.Exercises {
			max := ex.Load.Max()
			if max > 0 && max > prs[ex.Name] {
				prs[ex.Name] = max
			}
		}
	}
	return prs
}

// IsPersonalRecord reports whether this exercise instance carries the
// all-time max for its name. Ties are all flagged.
func IsPersonalRecord(prs map[string]float64, ex model.Exercise) bool {
	max := ex.Load.Max()
	return max > 0 && prs[ex.Name] == max
}

// TotalVolume computes a gym session's lifted volume in kg. With per-set
// weights the recorded reps apply uniformly to every set (the exercise
// stores one rep count, not one per set); otherwise sets × reps × weight.
// Missing sets/reps/weight count as 1, 1 and 0.
func TotalVolume(s model.WorkoutSession) float64 {
	if s.Type != model.SessionGym {
		return 0
	}
	var vol float64
	for _, ex := range s.Exercises {
		reps := ex.Reps.CountOr(1)
		if ws := ex.Load.Weights(); ws != nil {
			for _, w := range ws {
				vol += w * float64(reps)
			}
			continue
		}
		sets := ex.Sets
		if sets <= 0 {
			sets = 1
		}
		vol += float64(sets) * float64(reps) * ex.Load.Weight()
	}
	return vol
}
