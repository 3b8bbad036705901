package main

import (
	"strings"
	"testing"

	"github.com/and161185/fittrack/internal/model"
	"github.com/and161185/fittrack/internal/service"
)

func Test_parseExercises(t *testing.T) {
	raw := []byte(`[
		{"name":"Bench Press","sets":4,"reps":8,"weight":80,
		 "dropSets":[{"weight":60,"reps":"failure"}]},
		{"name":"Incline DB Press","reps":10,"weights":[30,32.5,32.5],"rir":"RIR 2"}
	]`)
	exs, err := parseExercises(raw)
	if err != nil {
		t.Fatalf("parseExercises: %v", err)
	}
	if len(exs) != 2 {
		t.Fatalf("rows: %d", len(exs))
	}
	if exs[0].Name != "Bench Press" || exs[0].Reps.Count() != 8 || exs[0].Weight != 80 {
		t.Fatalf("row 0: %+v", exs[0])
	}
	if !exs[0].DropSets[0].Reps.Failure() {
		t.Fatalf("drop set reps: %+v", exs[0].DropSets[0])
	}
	if len(exs[1].Weights) != 3 || exs[1].RIR != "RIR 2" {
		t.Fatalf("row 1: %+v", exs[1])
	}

	if _, err := parseExercises([]byte(`{"name":"not a list"}`)); err == nil {
		t.Fatalf("non-array input must fail")
	}
}

func Test_parseFoods(t *testing.T) {
	raw := []byte(`[{"name":"Chicken","cal":239,"prot":27.3,"carb":0,"fat":14}]`)
	foods, err := parseFoods(raw)
	if err != nil {
		t.Fatalf("parseFoods: %v", err)
	}
	if len(foods) != 1 || foods[0].Calories != 239 || foods[0].ProteinG != 27.3 {
		t.Fatalf("foods: %+v", foods)
	}
}

func Test_renderHistory(t *testing.T) {
	got := renderHistory([]service.HistoryEntry{
		{
			WeightEntry: model.WeightEntry{ID: "b", Day: "2026-08-25", Value: 79.5, Notes: "am"},
			Delta:       -0.5, Direction: service.DirectionDown, HasDelta: true,
		},
		{
			WeightEntry: model.WeightEntry{ID: "a", Day: "2026-08-24", Value: 80},
		},
	})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines: %q", got)
	}
	if !strings.Contains(lines[0], "25/08/2026") || !strings.Contains(lines[0], "-0.5") || !strings.Contains(lines[0], "↓") {
		t.Fatalf("delta line: %q", lines[0])
	}
	if strings.ContainsAny(lines[1], "↑↓→") {
		t.Fatalf("oldest line must carry no delta: %q", lines[1])
	}

	if got := renderHistory(nil); !strings.Contains(got, "no measurements") {
		t.Fatalf("empty history: %q", got)
	}
}

func Test_renderSessions(t *testing.T) {
	sessions := []model.WorkoutSession{
		{
			ID: "s1", Day: "2026-08-26", Name: "Push", Type: model.SessionGym,
			Exercises: []model.Exercise{
				{Name: "Bench", Sets: 4, Reps: model.RepCount(8), Load: model.FixedLoad(80)},
			},
		},
		{
			ID: "s2", Day: "2026-08-25", Name: "Run", Type: model.SessionRun,
			DurationMin: 30, PaceMinPerKm: 5, DistanceKm: 6,
		},
	}
	prs := map[string]float64{"Bench": 80}

	got := renderSessions(sessions, prs)
	if !strings.Contains(got, "Bench  4x8 @ 80 kg  PR") {
		t.Fatalf("gym line: %q", got)
	}
	if !strings.Contains(got, "volume: 2560 kg") {
		t.Fatalf("volume line: %q", got)
	}
	if !strings.Contains(got, "30 min @ 5:00/km = 6.00 km") {
		t.Fatalf("run line: %q", got)
	}
}

func Test_loadString(t *testing.T) {
	if got := loadString(model.PerSetLoad([]float64{50, 52.5, 55})); got != "50/52.5/55 kg" {
		t.Fatalf("per-set: %q", got)
	}
	if got := loadString(model.FixedLoad(80)); got != "80 kg" {
		t.Fatalf("fixed: %q", got)
	}
}

func Test_renderSummary(t *testing.T) {
	s := service.Summary{
		WeeklyAverage:    80.5,
		HasWeeklyAverage: true,
		WeightEntries:    3,
		Workouts:         2,
		MealPlans:        1,
		RecentWeights:    []model.WeightEntry{{Day: "2026-08-26", Value: 79.5}},
		Chart: service.Series{
			Labels: []string{"24/08/2026", "26/08/2026"},
			Values: []float64{80, 79.5},
		},
	}
	got := renderSummary(s)
	if !strings.Contains(got, "weekly average: 80.5 kg") {
		t.Fatalf("average: %q", got)
	}
	if !strings.Contains(got, "3 weights, 2 workouts, 1 meal plans") {
		t.Fatalf("counts: %q", got)
	}
	if !strings.Contains(got, "chart: 2 points, 24/08/2026 .. 26/08/2026") {
		t.Fatalf("chart: %q", got)
	}

	empty := renderSummary(service.Summary{})
	if !strings.Contains(empty, "weekly average: no data") {
		t.Fatalf("empty: %q", empty)
	}
}
