package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/and161185/fittrack/internal/errs"
	"github.com/and161185/fittrack/internal/model"
)

// Direction labels a weight delta relative to the previous measurement.
type Direction string

const (
	DirectionUp        Direction = "up"
	DirectionDown      Direction = "down"
	DirectionUnchanged Direction = "unchanged"
)

// HistoryEntry is a weight entry annotated with its delta from the
// chronologically previous entry.
type HistoryEntry struct {
	model.WeightEntry
	Delta     float64   // value minus previous value, one decimal
	Direction Direction // valid only when HasDelta
	HasDelta  bool      // false for the oldest entry
}

// Series is a chart-ready pair of parallel label/value sequences.
type Series struct {
	Labels []string
	Values []float64
}

// Chartable reports whether the series has enough points to draw a line.
func (s Series) Chartable() bool { return len(s.Values) >= 2 }

// WeightStats summarizes the full weight history for the stats row.
type WeightStats struct {
	First, Current, Min, Max float64
}

// UpsertWeight records a measurement for a day. A second submission for the
// same day overwrites value and notes in place, keeping the entry's id.
func (l *Ledger) UpsertWeight(ctx context.Context, day model.Day, value float64, notes string) (model.WeightEntry, error) {
	if !day.Valid() {
		return model.WeightEntry{}, fmt.Errorf("%w: valid date required", errs.ErrValidation)
	}
	if value <= 0 {
		return model.WeightEntry{}, fmt.Errorf("%w: weight must be positive", errs.ErrValidation)
	}

	for i := range l.weights {
		if l.weights[i].Day == day {
			l.weights[i].Value = value
			l.weights[i].Notes = notes
			if err := l.persist(ctx); err != nil {
				return model.WeightEntry{}, err
			}
			return l.weights[i], nil
		}
	}

	entry := model.WeightEntry{ID: model.NewID(), Day: day, Value: value, Notes: notes}
	l.weights = append(l.weights, entry)
	if err := l.persist(ctx); err != nil {
		return model.WeightEntry{}, err
	}
	return entry, nil
}

// DeleteWeight removes an entry; deleting an unknown id is a no-op.
func (l *Ledger) DeleteWeight(ctx context.Context, id string) error {
	kept := l.weights[:0]
	for _, w := range l.weights {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	if len(kept) == len(l.weights) {
		return nil
	}
	l.weights = kept
	return l.persist(ctx)
}

// Weights returns all entries in date-ascending order.
func (l *Ledger) Weights() []model.WeightEntry {
	out := make([]model.WeightEntry, len(l.weights))
	copy(out, l.weights)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// WeeklyAverage computes the mean weight of the Monday–Sunday week
// containing ref, rounded to one decimal. ok is false when the week holds
// no measurements.
func (l *Ledger) WeeklyAverage(ref model.Day) (avg float64, ok bool) {
	monday, sunday := ref.WeekBounds()
	var sum float64
	var n int
	for _, w := range l.weights {
		if w.Day >= monday && w.Day <= sunday {
			sum += w.Value
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return round1(sum / float64(n)), true
}

// History returns entries newest-first, each annotated with its delta from
// the entry with the next-earlier date in the full history.
func (l *Ledger) History() []HistoryEntry {
	asc := l.Weights()
	out := make([]HistoryEntry, len(asc))
	for i, w := range asc {
		h := HistoryEntry{WeightEntry: w}
		if i > 0 {
			h.Delta = round1(w.Value - asc[i-1].Value)
			h.HasDelta = true
			switch {
			case h.Delta > 0:
				h.Direction = DirectionUp
			case h.Delta < 0:
				h.Direction = DirectionDown
			default:
				h.Direction = DirectionUnchanged
			}
		}
		// Newest first.
		out[len(asc)-1-i] = h
	}
	return out
}

// RangeSeries returns a date-ascending chart series limited to the trailing
// days calendar days, or the full history when days is 0. Callers must treat
// a non-Chartable series as "not enough data".
func (l *Ledger) RangeSeries(days int) Series {
	asc := l.Weights()
	var s Series
	var cutoff model.Day
	if days > 0 {
		cutoff = model.DayOf(l.now()).AddDays(-days)
	}
	for _, w := range asc {
		if days > 0 && w.Day < cutoff {
			continue
		}
		s.Labels = append(s.Labels, w.Day.Label())
		s.Values = append(s.Values, w.Value)
	}
	return s
}

// Stats returns first/current/min/max over the whole history.
// ok is false when no measurements exist.
func (l *Ledger) Stats() (WeightStats, bool) {
	asc := l.Weights()
	if len(asc) == 0 {
		return WeightStats{}, false
	}
	st := WeightStats{
		First:   asc[0].Value,
		Current: asc[len(asc)-1].Value,
		Min:     asc[0].Value,
		Max:     asc[0].Value,
	}
	for _, w := range asc[1:] {
		if w.Value < st.Min {
			st.Min = w.Value
		}
		if w.Value > st.Max {
			st.Max = w.Value
		}
	}
	return st, true
}
