package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/and161185/fittrack/internal/errs"
	"github.com/and161185/fittrack/internal/model"
)

// MacroTotals aggregates one meal plan's foods for display: calories to the
// nearest integer, macros to one decimal.
type MacroTotals struct {
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// AddMealPlan records a meal plan. Date and name are required; an empty
// foods list is a valid plan (a named placeholder for the day).
func (l *Ledger) AddMealPlan(ctx context.Context, day model.Day, name string, foods []model.Food) (model.MealPlan, error) {
	if !day.Valid() {
		return model.MealPlan{}, fmt.Errorf("%w: valid date required", errs.ErrValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.MealPlan{}, fmt.Errorf("%w: plan name required", errs.ErrValidation)
	}

	kept := make([]model.Food, 0, len(foods))
	for _, f := range foods {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			continue
		}
		// Negative macro inputs are form noise, recorded as 0.
		f.Calories = math.Max(f.Calories, 0)
		f.ProteinG = math.Max(f.ProteinG, 0)
		f.CarbsG = math.Max(f.CarbsG, 0)
		f.FatG = math.Max(f.FatG, 0)
		kept = append(kept, f)
	}

	p := model.MealPlan{ID: model.NewID(), Day: day, Name: name, Foods: kept}
	l.meals = append(l.meals, p)
	if err := l.persist(ctx); err != nil {
		return model.MealPlan{}, err
	}
	return p, nil
}

// DeleteMealPlan removes a plan; deleting an unknown id is a no-op.
func (l *Ledger) DeleteMealPlan(ctx context.Context, id string) error {
	kept := l.meals[:0]
	for _, m := range l.meals {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(l.meals) {
		return nil
	}
	l.meals = kept
	return l.persist(ctx)
}

// MealPlans returns all meal plans newest-first, stable on ties.
func (l *Ledger) MealPlans() []model.MealPlan {
	out := make([]model.MealPlan, len(l.meals))
	copy(out, l.meals)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	return out
}

// Macros sums a plan's foods.
func Macros(p model.MealPlan) MacroTotals {
	var cal, prot, carb, fat float64
	for _, f := range p.Foods {
		cal += f.Calories
		prot += f.ProteinG
		carb += f.CarbsG
		fat += f.FatG
	}
	return MacroTotals{
		Calories: int(math.Round(cal)),
		ProteinG: round1(prot),
		CarbsG:   round1(carb),
		FatG:     round1(fat),
	}
}
