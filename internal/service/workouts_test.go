package service

import (
	"context"
	"errors"
	"testing"

	"github.com/and161185/fittrack/internal/errs"
	"github.com/and161185/fittrack/internal/model"
)

func TestParsePace(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"5:30", 5.5, false},
		{"5:00", 5.0, false},
		{"4:45", 4.75, false},
		{"6", 6.0, false},
		{"5.5", 5.5, false},
		{"0:00", 0, true},
		{"", 0, true},
		{"-5:30", 0, true},
		{"5:-30", 0, true},
		{"abc", 0, true},
		{"0", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePace(tc.in)
			if tc.wantErr {
				if !errors.Is(err, errs.ErrValidation) {
					t.Fatalf("ParsePace(%q): want ErrValidation, got %v", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePace(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParsePace(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatPace(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{5.5, "5:30"},
		{5.0, "5:00"},
		{4.75, "4:45"},
	}
	for _, tc := range cases {
		if got := FormatPace(tc.in); got != tc.want {
			t.Fatalf("FormatPace(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCreateRunSession_DerivesDistance(t *testing.T) {
	t.Parallel()

	l, _, _ := openTestLedger(t)
	s, err := l.CreateRunSession(context.Background(), "2026-08-24", "", "easy", 30, "5:00")
	if err != nil {
		t.Fatalf("CreateRunSession: %v", err)
	}
	if s.Type != model.SessionRun {
		t.Fatalf("type = %q", s.Type)
	}
	if s.Name != "Run" {
		t.Fatalf("blank name must default: %q", s.Name)
	}
	if s.DistanceKm != 6.0 {
		t.Fatalf("30 min at 5:00/km: distance = %v, want 6", s.DistanceKm)
	}
	if s.PaceMinPerKm != 5.0 || s.DurationMin != 30 {
		t.Fatalf("run fields: %+v", s)
	}
}

func TestCreateRunSession_Validation(t *testing.T) {
	t.Parallel()

	l, _, _ := openTestLedger(t)
	ctx := context.Background()

	if _, err := l.CreateRunSession(ctx, "2026-08-24", "", "", 0, "5:00"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("zero duration: %v", err)
	}
	if _, err := l.CreateRunSession(ctx, "2026-08-24", "", "", 30, "0:00"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("zero pace: %v", err)
	}
	if _, err := l.CreateRunSession(ctx, "", "", "", 30, "5:00"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("missing day: %v", err)
	}
}

func TestCreateGymSession_Validation(t *testing.T) {
	t.Parallel()

	l, _, _ := openTestLedger(t)
	ctx := context.Background()

	if _, err := l.CreateGymSession(ctx, "2026-08-24", "", "", []ExerciseInput{{Name: "Squat"}}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("missing name: %v", err)
	}
	if _, err := l.CreateGymSession(ctx, "2026-08-24", "Legs", "", nil); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("no exercises: %v", err)
	}
	// Nameless exercise rows are dropped, not rejected.
	s, err := l.CreateGymSession(ctx, "2026-08-24", "Legs", "", []ExerciseInput{
		{Name: "   "},
		{Name: "Squat", Sets: 5, Reps: model.RepCount(5), Weight: 100},
	})
	if err != nil {
		t.Fatalf("CreateGymSession: %v", err)
	}
	if len(s.Exercises) != 1 || s.Exercises[0].Name != "Squat" {
		t.Fatalf("exercises: %+v", s.Exercises)
	}
}

func TestCreateGymSession_PerSetWinsOverFixed(t *testing.T) {
	t.Parallel()

	l, _, _ := openTestLedger(t)
	s, err := l.CreateGymSession(context.Background(), "2026-08-24", "Push", "", []ExerciseInput{
		{Name: "Bench", Reps: model.RepCount(8), Weight: 70, Weights: []float64{50, 55, 60}},
	})
	if err != nil {
		t.Fatalf("CreateGymSession: %v", err)
	}
	ex := s.Exercises[0]
	if !ex.Load.IsPerSet() {
		t.Fatalf("per-set weights must take precedence: %+v", ex.Load)
	}
	if ex.Sets != 3 {
		t.Fatalf("sets must follow the per-set list: %d", ex.Sets)
	}
}

func TestCreateRestSession_Defaults(t *testing.T) {
	t.Parallel()

	l, _, _ := openTestLedger(t)
	s, err := l.CreateRestSession(context.Background(), "2026-08-24", "", "stretching")
	if err != nil {
		t.Fatalf("CreateRestSession: %v", err)
	}
	if s.Type != model.SessionRest || s.Name != "Rest Day" {
		t.Fatalf("rest defaults: %+v", s)
	}
}

func TestDeleteSession_Idempotent(t *testing.T) {
	t.Parallel()

	l, _, _ := openTestLedger(t)
	ctx := context.Background()
	s, err := l.CreateRestSession(ctx, "2026-08-24", "", "")
	if err != nil {
		t.Fatalf("CreateRestSession: %v", err)
	}
	if err := l.DeleteSession(ctx, s.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err := l.DeleteSession(ctx, s.ID); err != nil {
		t.Fatalf("second delete must be a no-op: %v", err)
	}
	if got := len(l.Sessions()); got != 0 {
		t.Fatalf("want empty, got %d", got)
	}
}

func TestSessions_NewestFirst(t *testing.T) {
	t.Parallel()

	l, _, _ := openTestLedger(t)
	ctx := context.Background()
	mustRest := func(day model.Day) {
		t.Helper()
		if _, err := l.CreateRestSession(ctx, day, "", ""); err != nil {
			t.Fatalf("CreateRestSession(%s): %v", day, err)
		}
	}
	mustRest("2026-08-24")
	mustRest("2026-08-26")
	mustRest("2026-08-25")

	got := l.Sessions()
	if got[0].Day != "2026-08-26" || got[1].Day != "2026-08-25" || got[2].Day != "2026-08-24" {
		t.Fatalf("order: %v %v %v", got[0].Day, got[1].Day, got[2].Day)
	}
}

func TestPersonalRecords(t *testing.T) {
	t.Parallel()

	l, _, _ := openTestLedger(t)
	ctx := context.Background()

	if _, err := l.CreateGymSession(ctx, "2026-08-24", "Push", "", []ExerciseInput{
		{Name: "Bench Press", Sets: 4, Reps: model.RepCount(5), Weight: 100},
	}); err != nil {
		t.Fatalf("day 1: %v", err)
	}
	if _, err := l.CreateGymSession(ctx, "2026-08-26", "Push", "", []ExerciseInput{
		{Name: "Bench Press", Sets: 4, Reps: model.RepCount(8), Weight: 90},
		{Name: "Overhead Press", Reps: model.RepCount(6), Weights: []float64{40, 45, 42.5}},
	}); err != nil {
		t.Fatalf("day 2: %v", err)
	}
	// Runs never contribute to records.
	if _, err := l.CreateRunSession(ctx, "2026-08-25", "", "", 30, "5:00"); err != nil {
		t.Fatalf("run: %v", err)
	}

	prs := l.PersonalRecords()
	if prs["Bench Press"] != 100 {
		t.Fatalf("bench PR = %v, want 100", prs["Bench Press"])
	}
	if prs["Overhead Press"] != 45 {
		t.Fatalf("per-set PR must use the heaviest set: %v", prs["Overhead Press"])
	}

	if !IsPersonalRecord(prs, model.Exercise{Name: "Bench Press", Load: model.FixedLoad(100)}) {
		t.Fatalf("matching the record counts as a record")
	}
	if IsPersonalRecord(prs, model.Exercise{Name: "Bench Press", Load: model.FixedLoad(90)}) {
		t.Fatalf("90 is below the 100 record")
	}
}

func TestTotalVolume(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		s    model.WorkoutSession
		want float64
	}{
		{
			name: "per-set weights",
			s: model.WorkoutSession{Type: model.SessionGym, Exercises: []model.Exercise{
				{Name: "Bench", Reps: model.RepCount(8), Load: model.PerSetLoad([]float64{50, 55, 60})},
			}},
			want: (50 + 55 + 60) * 8,
		},
		{
			name: "fixed weight",
			s: model.WorkoutSession{Type: model.SessionGym, Exercises: []model.Exercise{
				{Name: "Squat", Sets: 5, Reps: model.RepCount(5), Load: model.FixedLoad(100)},
			}},
			want: 5 * 5 * 100,
		},
		{
			name: "defaults for missing sets and reps",
			s: model.WorkoutSession{Type: model.SessionGym, Exercises: []model.Exercise{
				{Name: "Curl", Load: model.FixedLoad(20)},
			}},
			want: 20,
		},
		{
			name: "bodyweight contributes nothing",
			s: model.WorkoutSession{Type: model.SessionGym, Exercises: []model.Exercise{
				{Name: "Pull-up", Sets: 3, Reps: model.RepCount(10)},
			}},
			want: 0,
		},
		{
			name: "runs have no volume",
			s:    model.WorkoutSession{Type: model.SessionRun, DurationMin: 30},
			want: 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TotalVolume(tc.s); got != tc.want {
				t.Fatalf("TotalVolume = %v, want %v", got, tc.want)
			}
		})
	}
}
