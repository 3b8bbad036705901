// Package model defines domain entities used by services and storage backends.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// NewID generates a fresh record id.
func NewID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// Account is a registered user. The password is never stored; only its
// Argon2id hash with a per-account salt. The KEK salt and wrapped DEK
// support sealing the account's collections at rest.
type Account struct {
	Email      string    `json:"email"` // case-folded, unique
	PwdHash    []byte    `json:"pwd_hash"`
	SaltAuth   []byte    `json:"salt_auth"`
	KekSalt    []byte    `json:"kek_salt"`
	WrappedDEK []byte    `json:"wrapped_dek"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session points at the active account. DEK is the unwrapped data key for
// the account's vault; it lives only in memory and in the remember-me slot.
type Session struct {
	Email    string
	Remember bool
	DEK      []byte
}

// WeightEntry is one body-weight measurement. At most one entry exists per
// calendar day per account; submitting the same day again updates in place.
type WeightEntry struct {
	ID    string  `json:"id"`
	Day   Day     `json:"date"`
	Value float64 `json:"value"` // kilograms, > 0
	Notes string  `json:"notes,omitempty"`
}

// Food is one row of a meal plan. Missing or invalid numeric inputs are
// recorded as 0.
type Food struct {
	Name     string  `json:"name"`
	Calories float64 `json:"cal"`
	ProteinG float64 `json:"prot"`
	CarbsG   float64 `json:"carb"`
	FatG     float64 `json:"fat"`
}

// MealPlan is a named list of foods for one day.
type MealPlan struct {
	ID    string `json:"id"`
	Day   Day    `json:"date"`
	Name  string `json:"name"`
	Foods []Food `json:"foods"`
}

// SessionType discriminates workout sessions.
type SessionType string

const (
	SessionGym  SessionType = "gym"
	SessionRun  SessionType = "run"
	SessionRest SessionType = "rest"
)

// DropSet is a sub-set performed immediately after a main set at reduced weight.
type DropSet struct {
	Weight float64 `json:"weight,omitempty"`
	Reps   Reps    `json:"reps"`
}

// Exercise is one exercise within a gym session or a plan template.
// In a plan the fields carry target semantics instead of performed ones.
type Exercise struct {
	Name     string    `json:"name"`
	Sets     int       `json:"sets,omitempty"` // 0 = unspecified
	Reps     Reps      `json:"reps"`
	Load     Load      `json:"load"`
	RIR      string    `json:"rir,omitempty"` // free text, e.g. "RIR 2"
	Note     string    `json:"note,omitempty"`
	DropSets []DropSet `json:"dropSets,omitempty"`
}

// Clone returns a deep copy of the exercise.
func (e Exercise) Clone() Exercise {
	cp := e
	if e.Load.IsPerSet() {
		cp.Load = PerSetLoad(e.Load.Weights())
	}
	if len(e.DropSets) > 0 {
		cp.DropSets = make([]DropSet, len(e.DropSets))
		copy(cp.DropSets, e.DropSets)
	}
	return cp
}

// CloneExercises deep-copies a list of exercises.
func CloneExercises(in []Exercise) []Exercise {
	if len(in) == 0 {
		return nil
	}
	out := make([]Exercise, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// WorkoutSession is one recorded training session. The run fields are set
// only for SessionRun, Exercises only for SessionGym.
type WorkoutSession struct {
	ID    string      `json:"id"`
	Day   Day         `json:"date"`
	Name  string      `json:"name"`
	Notes string      `json:"notes,omitempty"`
	Type  SessionType `json:"type"`

	Exercises []Exercise `json:"exercises,omitempty"`

	DurationMin  float64 `json:"duration,omitempty"`
	PaceMinPerKm float64 `json:"pace,omitempty"`
	DistanceKm   float64 `json:"distance,omitempty"` // duration/pace, 2 decimals
}

// WorkoutPlan is a reusable session template.
type WorkoutPlan struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Desc      string     `json:"desc,omitempty"`
	Exercises []Exercise `json:"exercises"`
}
