package service

import "github.com/and161185/fittrack/internal/model"

// dashRecent is how many recent records each dashboard list shows.
const dashRecent = 4

// dashChartPoints is how many trailing measurements the mini chart plots.
const dashChartPoints = 14

// Summary is the dashboard working set: headline stats, the most recent
// records of each kind, and the mini weight chart.
type Summary struct {
	WeeklyAverage    float64
	HasWeeklyAverage bool

	WeightEntries int
	Workouts      int
	MealPlans     int

	RecentWeights  []model.WeightEntry    // newest first
	RecentSessions []model.WorkoutSession // newest first
	RecentMeals    []model.MealPlan       // newest first

	Chart Series
}

// Summary derives the dashboard from the current working set.
func (l *Ledger) Summary() Summary {
	s := Summary{
		WeightEntries: len(l.weights),
		Workouts:      len(l.workouts),
		MealPlans:     len(l.meals),
	}
	s.WeeklyAverage, s.HasWeeklyAverage = l.WeeklyAverage(model.DayOf(l.now()))

	asc := l.Weights()
	for i := len(asc) - 1; i >= 0 && len(s.RecentWeights) < dashRecent; i-- {
		s.RecentWeights = append(s.RecentWeights, asc[i])
	}

	sessions := l.Sessions()
	if len(sessions) > dashRecent {
		sessions = sessions[:dashRecent]
	}
	s.RecentSessions = sessions

	meals := l.MealPlans()
	if len(meals) > dashRecent {
		meals = meals[:dashRecent]
	}
	s.RecentMeals = meals

	// Mini chart: the trailing measurements, not a day window.
	start := len(asc) - dashChartPoints
	if start < 0 {
		start = 0
	}
	for _, w := range asc[start:] {
		s.Chart.Labels = append(s.Chart.Labels, w.Day.Label())
		s.Chart.Values = append(s.Chart.Values, w.Value)
	}
	return s
}
