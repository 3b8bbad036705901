package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/and161185/fittrack/internal/model"
	"github.com/and161185/fittrack/internal/service"
)

// ---- input ----

func readAll(p string) ([]byte, error) {
	if p == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(p)
}

// exerciseJSON is the -ex input row. Reps accepts a number, "failure" or
// null; weights (per set) wins over weight when both are given.
type exerciseJSON struct {
	Name     string          `json:"name"`
	Sets     int             `json:"sets,omitempty"`
	Reps     model.Reps      `json:"reps"`
	Weight   float64         `json:"weight,omitempty"`
	Weights  []float64       `json:"weights,omitempty"`
	RIR      string          `json:"rir,omitempty"`
	Note     string          `json:"note,omitempty"`
	DropSets []model.DropSet `json:"dropSets,omitempty"`
}

func parseExercises(raw []byte) ([]service.ExerciseInput, error) {
	var rows []exerciseJSON
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse exercises: %w", err)
	}
	out := make([]service.ExerciseInput, len(rows))
	for i, r := range rows {
		out[i] = service.ExerciseInput{
			Name:     r.Name,
			Sets:     r.Sets,
			Reps:     r.Reps,
			Weight:   r.Weight,
			Weights:  r.Weights,
			RIR:      r.RIR,
			Note:     r.Note,
			DropSets: r.DropSets,
		}
	}
	return out, nil
}

func parseFoods(raw []byte) ([]model.Food, error) {
	var foods []model.Food
	if err := json.Unmarshal(raw, &foods); err != nil {
		return nil, fmt.Errorf("parse foods: %w", err)
	}
	return foods, nil
}

// ---- output ----

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func renderHistory(h []service.HistoryEntry) string {
	if len(h) == 0 {
		return "no measurements yet\n"
	}
	var b strings.Builder
	for _, e := range h {
		fmt.Fprintf(&b, "%s  %6.1f kg", e.Day.Label(), e.Value)
		if e.HasDelta {
			fmt.Fprintf(&b, "  %s kg %s", deltaString(e.Delta), arrow(e.Direction))
		}
		if e.Notes != "" {
			fmt.Fprintf(&b, "  (%s)", e.Notes)
		}
		fmt.Fprintf(&b, "  [%s]\n", e.ID)
	}
	return b.String()
}

func deltaString(d float64) string {
	if d > 0 {
		return fmt.Sprintf("+%.1f", d)
	}
	return fmt.Sprintf("%.1f", d)
}

func arrow(d service.Direction) string {
	switch d {
	case service.DirectionUp:
		return "↑"
	case service.DirectionDown:
		return "↓"
	default:
		return "→"
	}
}

func renderStats(st service.WeightStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "first:   %.1f kg\n", st.First)
	fmt.Fprintf(&b, "current: %.1f kg\n", st.Current)
	fmt.Fprintf(&b, "min:     %.1f kg\n", st.Min)
	fmt.Fprintf(&b, "max:     %.1f kg\n", st.Max)
	return b.String()
}

func renderSessions(sessions []model.WorkoutSession, prs map[string]float64) string {
	if len(sessions) == 0 {
		return "no sessions yet\n"
	}
	var b strings.Builder
	for _, s := range sessions {
		fmt.Fprintf(&b, "%s  [%s] %s  (%s)\n", s.Day.Label(), s.Type, s.Name, s.ID)
		switch s.Type {
		case model.SessionGym:
			for _, ex := range s.Exercises {
				fmt.Fprintf(&b, "    %s", ex.Name)
				if ex.Sets > 0 {
					fmt.Fprintf(&b, "  %dx%s", ex.Sets, repsString(ex.Reps))
				}
				if !ex.Load.IsZero() {
					fmt.Fprintf(&b, " @ %s", loadString(ex.Load))
				}
				if service.IsPersonalRecord(prs, ex) {
					b.WriteString("  PR")
				}
				b.WriteString("\n")
			}
			if vol := service.TotalVolume(s); vol > 0 {
				fmt.Fprintf(&b, "    volume: %.0f kg\n", vol)
			}
		case model.SessionRun:
			fmt.Fprintf(&b, "    %.0f min @ %s/km = %.2f km\n",
				s.DurationMin, service.FormatPace(s.PaceMinPerKm), s.DistanceKm)
		}
	}
	return b.String()
}

func repsString(r model.Reps) string {
	if r.Failure() {
		return "failure"
	}
	if r.IsZero() {
		return "?"
	}
	return fmt.Sprintf("%d", r.Count())
}

func loadString(l model.Load) string {
	if ws := l.Weights(); ws != nil {
		parts := make([]string, len(ws))
		for i, w := range ws {
			parts[i] = trimFloat(w)
		}
		return strings.Join(parts, "/") + " kg"
	}
	return trimFloat(l.Weight()) + " kg"
}

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

func renderMeals(meals []model.MealPlan) string {
	if len(meals) == 0 {
		return "no meal plans yet\n"
	}
	var b strings.Builder
	for _, m := range meals {
		t := service.Macros(m)
		fmt.Fprintf(&b, "%s  %s  (%s)\n", m.Day.Label(), m.Name, m.ID)
		for _, f := range m.Foods {
			fmt.Fprintf(&b, "    %s  %s kcal  P%s C%s F%s\n",
				f.Name, trimFloat(f.Calories), trimFloat(f.ProteinG), trimFloat(f.CarbsG), trimFloat(f.FatG))
		}
		fmt.Fprintf(&b, "    total: %d kcal  P%.1f C%.1f F%.1f\n",
			t.Calories, t.ProteinG, t.CarbsG, t.FatG)
	}
	return b.String()
}

func renderSummary(s service.Summary) string {
	var b strings.Builder
	if s.HasWeeklyAverage {
		fmt.Fprintf(&b, "weekly average: %.1f kg\n", s.WeeklyAverage)
	} else {
		b.WriteString("weekly average: no data\n")
	}
	fmt.Fprintf(&b, "records: %d weights, %d workouts, %d meal plans\n",
		s.WeightEntries, s.Workouts, s.MealPlans)

	if len(s.RecentWeights) > 0 {
		b.WriteString("\nrecent weights:\n")
		for _, w := range s.RecentWeights {
			fmt.Fprintf(&b, "  %s  %6.1f kg\n", w.Day.Label(), w.Value)
		}
	}
	if len(s.RecentSessions) > 0 {
		b.WriteString("\nrecent workouts:\n")
		for _, w := range s.RecentSessions {
			fmt.Fprintf(&b, "  %s  [%s] %s\n", w.Day.Label(), w.Type, w.Name)
		}
	}
	if len(s.RecentMeals) > 0 {
		b.WriteString("\nrecent meal plans:\n")
		for _, m := range s.RecentMeals {
			fmt.Fprintf(&b, "  %s  %s\n", m.Day.Label(), m.Name)
		}
	}
	if s.Chart.Chartable() {
		fmt.Fprintf(&b, "\nchart: %d points, %s .. %s\n",
			len(s.Chart.Values), s.Chart.Labels[0], s.Chart.Labels[len(s.Chart.Labels)-1])
	}
	return b.String()
}
