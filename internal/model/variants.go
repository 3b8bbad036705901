package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// failureSentinel is the on-disk marker for a set taken to muscular failure.
const failureSentinel = "failure"

// Reps records repetitions for an exercise or drop set: a positive count,
// "to failure", or unspecified.
type Reps struct {
	count     int
	toFailure bool
}

// RepCount returns a counted-reps value. Non-positive n means unspecified.
func RepCount(n int) Reps {
	if n < 0 {
		n = 0
	}
	return Reps{count: n}
}

// FailureReps returns the to-failure sentinel value.
func FailureReps() Reps { return Reps{toFailure: true} }

// Failure reports whether the set was taken to failure.
func (r Reps) Failure() bool { return r.toFailure }

// Count returns the recorded rep count, 0 when to-failure or unspecified.
func (r Reps) Count() int {
	if r.toFailure {
		return 0
	}
	return r.count
}

// IsZero reports whether no reps information was recorded.
func (r Reps) IsZero() bool { return !r.toFailure && r.count == 0 }

// CountOr returns the rep count, or def when to-failure or unspecified.
func (r Reps) CountOr(def int) int {
	if r.toFailure || r.count == 0 {
		return def
	}
	return r.count
}

// MarshalJSON encodes a count as a number, failure as "failure", unset as null.
func (r Reps) MarshalJSON() ([]byte, error) {
	switch {
	case r.toFailure:
		return json.Marshal(failureSentinel)
	case r.count > 0:
		return json.Marshal(r.count)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a number, the "failure" string, or null.
func (r *Reps) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Reps{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != failureSentinel {
			return fmt.Errorf("reps: unknown sentinel %q", s)
		}
		*r = FailureReps()
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("reps: %w", err)
	}
	*r = RepCount(n)
	return nil
}

// Load is the weight component of an exercise: a single working weight,
// one weight per set, or nothing. The two forms are mutually exclusive.
type Load struct {
	perSet []float64
	fixed  float64
}

// FixedLoad returns a single-weight load. Non-positive kg means no load.
func FixedLoad(kg float64) Load {
	if kg <= 0 {
		return Load{}
	}
	return Load{fixed: kg}
}

// PerSetLoad returns a per-set load from one weight per set.
// Invalid lists (empty, or any entry not strictly positive) yield no load.
func PerSetLoad(kgs []float64) Load {
	if len(kgs) == 0 {
		return Load{}
	}
	for _, w := range kgs {
		if w <= 0 {
			return Load{}
		}
	}
	cp := make([]float64, len(kgs))
	copy(cp, kgs)
	return Load{perSet: cp}
}

// IsZero reports whether no load was recorded.
func (l Load) IsZero() bool { return len(l.perSet) == 0 && l.fixed == 0 }

// IsPerSet reports whether the load lists one weight per set.
func (l Load) IsPerSet() bool { return len(l.perSet) > 0 }

// Weights returns a copy of the per-set weights, nil for fixed or no load.
func (l Load) Weights() []float64 {
	if len(l.perSet) == 0 {
		return nil
	}
	cp := make([]float64, len(l.perSet))
	copy(cp, l.perSet)
	return cp
}

// Weight returns the single working weight, 0 for per-set or no load.
func (l Load) Weight() float64 {
	if l.IsPerSet() {
		return 0
	}
	return l.fixed
}

// Max returns the heaviest weight in the load, 0 when no load was recorded.
// This is the value personal records are computed from.
func (l Load) Max() float64 {
	if !l.IsPerSet() {
		return l.fixed
	}
	max := l.perSet[0]
	for _, w := range l.perSet[1:] {
		if w > max {
			max = w
		}
	}
	return max
}

// MarshalJSON encodes per-set weights as an array, a fixed weight as a
// number, and no load as null.
func (l Load) MarshalJSON() ([]byte, error) {
	switch {
	case l.IsPerSet():
		return json.Marshal(l.perSet)
	case l.fixed > 0:
		return json.Marshal(l.fixed)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts an array, a number, or null.
func (l *Load) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = Load{}
		return nil
	}
	var kgs []float64
	if err := json.Unmarshal(b, &kgs); err == nil {
		*l = PerSetLoad(kgs)
		return nil
	}
	var kg float64
	if err := json.Unmarshal(b, &kg); err != nil {
		return errors.New("load: expected number or array")
	}
	*l = FixedLoad(kg)
	return nil
}
