package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/and161185/fittrack/internal/errs"
	"github.com/and161185/fittrack/internal/model"
)

// SavePlan creates a plan template, or replaces the fields of an existing
// one in place when id is non-empty (the "editing" context of the form).
func (l *Ledger) SavePlan(ctx context.Context, id, name, desc string, exercises []ExerciseInput) (model.WorkoutPlan, error) {
	name = strings.TrimSpace(name)
	exs := collectExercises(exercises)
	if name == "" || len(exs) == 0 {
		return model.WorkoutPlan{}, fmt.Errorf("%w: plan name and at least one exercise required", errs.ErrValidation)
	}

	if id != "" {
		for i := range l.plans {
			if l.plans[i].ID == id {
				l.plans[i].Name = name
				l.plans[i].Desc = strings.TrimSpace(desc)
				l.plans[i].Exercises = exs
				if err := l.persist(ctx); err != nil {
					return model.WorkoutPlan{}, err
				}
				return l.plans[i], nil
			}
		}
		return model.WorkoutPlan{}, errs.ErrNotFound
	}

	p := model.WorkoutPlan{
		ID:        model.NewID(),
		Name:      name,
		Desc:      strings.TrimSpace(desc),
		Exercises: exs,
	}
	l.plans = append(l.plans, p)
	if err := l.persist(ctx); err != nil {
		return model.WorkoutPlan{}, err
	}
	return p, nil
}

// DeletePlan removes a plan; deleting an unknown id is a no-op.
func (l *Ledger) DeletePlan(ctx context.Context, id string) error {
	kept := l.plans[:0]
	for _, p := range l.plans {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(l.plans) {
		return nil
	}
	l.plans = kept
	return l.persist(ctx)
}

// Plans returns all plan templates in insertion order.
func (l *Ledger) Plans() []model.WorkoutPlan {
	out := make([]model.WorkoutPlan, len(l.plans))
	copy(out, l.plans)
	return out
}

// Instantiate returns a deep copy of a plan's exercises for pre-filling a
// new session form. The plan itself is never touched, and no session is
// created here: that stays with CreateGymSession.
func (l *Ledger) Instantiate(planID string) (name string, exercises []model.Exercise, err error) {
	for _, p := range l.plans {
		if p.ID == planID {
			return p.Name, model.CloneExercises(p.Exercises), nil
		}
	}
	return "", nil, errs.ErrNotFound
}
