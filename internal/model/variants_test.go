package model

import (
	"encoding/json"
	"testing"
)

func TestReps_JSONRoundtrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   Reps
		want string
	}{
		{RepCount(8), "8"},
		{FailureReps(), `"failure"`},
		{Reps{}, "null"},
	}
	for _, c := range cases {
		b, err := json.Marshal(c.in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(b) != c.want {
			t.Fatalf("marshal: got %s, want %s", b, c.want)
		}
		var back Reps
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if back != c.in {
			t.Fatalf("roundtrip: got %+v, want %+v", back, c.in)
		}
	}
}

func TestReps_RejectsUnknownSentinel(t *testing.T) {
	t.Parallel()

	var r Reps
	if err := json.Unmarshal([]byte(`"amrap"`), &r); err == nil {
		t.Fatalf("expected error for unknown sentinel")
	}
}

func TestReps_CountOr(t *testing.T) {
	t.Parallel()

	if got := RepCount(8).CountOr(1); got != 8 {
		t.Fatalf("counted: got %d", got)
	}
	if got := FailureReps().CountOr(1); got != 1 {
		t.Fatalf("failure: got %d", got)
	}
	if got := (Reps{}).CountOr(1); got != 1 {
		t.Fatalf("unset: got %d", got)
	}
}

func TestLoad_PerSetValidation(t *testing.T) {
	t.Parallel()

	// Empty or non-positive entries mean the per-set list is unusable
	// and the load is treated as absent.
	if !PerSetLoad(nil).IsZero() {
		t.Fatalf("empty list should give zero load")
	}
	if !PerSetLoad([]float64{50, 0, 60}).IsZero() {
		t.Fatalf("non-positive entry should give zero load")
	}
	l := PerSetLoad([]float64{50, 55, 60})
	if !l.IsPerSet() || l.Max() != 60 {
		t.Fatalf("per-set load broken: %+v max=%v", l, l.Max())
	}
}

func TestLoad_JSONForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   Load
		want string
	}{
		{FixedLoad(72.5), "72.5"},
		{PerSetLoad([]float64{50, 55, 60}), "[50,55,60]"},
		{Load{}, "null"},
	}
	for _, c := range cases {
		b, err := json.Marshal(c.in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(b) != c.want {
			t.Fatalf("marshal: got %s, want %s", b, c.want)
		}
		var back Load
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if back.Max() != c.in.Max() || back.IsPerSet() != c.in.IsPerSet() {
			t.Fatalf("roundtrip mismatch: %s", b)
		}
	}
}

func TestLoad_WeightsIsACopy(t *testing.T) {
	t.Parallel()

	l := PerSetLoad([]float64{40, 45})
	ws := l.Weights()
	ws[0] = 999
	if l.Max() != 45 {
		t.Fatalf("mutating Weights() result leaked into the load")
	}
}
