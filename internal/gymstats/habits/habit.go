package habits

import (
	"errors"
	"slices"
	"time"
)

var (
	ErrInvalidHabitType = errors.New("invalid habit type")
	ErrInvalidValue     = errors.New("habit value must be positive")
)

// HabitType can be one of:
//   - protein_intake (grams)
//   - sun_exposure (minutes)
//   - movement, meditation, writing (minutes)
//   - bodyweight (kilos)
type HabitType string

const (
	HabitTypeProteinIntake HabitType = "protein_intake"
	HabitTypeSunExposure   HabitType = "sun_exposure"
	HabitTypeMovement      HabitType = "movement"
	HabitTypeMeditation    HabitType = "meditation"
	HabitTypeWriting       HabitType = "writing"
	HabitTypeBodyweight    HabitType = "bodyweight"
)

func (ht HabitType) String() string {
	return string(ht)
}

func (ht HabitType) IsValid() bool {
	switch ht {
	case HabitTypeProteinIntake,
		HabitTypeSunExposure,
		HabitTypeMovement,
		HabitTypeMeditation,
		HabitTypeWriting,
		HabitTypeBodyweight:
		return true
	default:
		return false
	}
}

func (ht HabitType) Unit() string {
	switch ht {
	case HabitTypeProteinIntake:
		return "g"
	case HabitTypeBodyweight:
		return "kg"
	default:
		return "min"
	}
}

// Log is a single habit entry.
type Log struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Type     HabitType `json:"type"`
	Value    float64   `json:"value"`
	Note     *string   `json:"note,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

func (l Log) Validate() error {
	if !l.Type.IsValid() {
		return ErrInvalidHabitType
	}
	if !(l.Value > 0) {
		return ErrInvalidValue
	}
	return nil
}

// Streak counts consecutive UTC days with at least one positive log.
type Streak struct {
	Type    HabitType `json:"type"`
	Current int       `json:"current"`
	Longest int       `json:"longest"`
	LastDay *string   `json:"last_day"`
}

const day = 24 * time.Hour

// ComputeStreak builds the streak from the days a habit was logged. The
// current streak is still alive when its last day is today or yesterday.
func ComputeStreak(habitType HabitType, days []time.Time, now time.Time) Streak {
	streak := Streak{Type: habitType}

	normalized := make(map[time.Time]bool, len(days))
	for _, d := range days {
		normalized[midnight(d)] = true
	}
	if len(normalized) == 0 {
		return streak
	}

	sorted := make([]time.Time, 0, len(normalized))
	for d := range normalized {
		sorted = append(sorted, d)
	}
	slices.SortFunc(sorted, time.Time.Compare)

	run := 0
	for i, d := range sorted {
		if i > 0 && d.Sub(sorted[i-1]) == day {
			run++
		} else {
			run = 1
		}
		if run > streak.Longest {
			streak.Longest = run
		}
	}

	last := sorted[len(sorted)-1]
	lastDay := last.Format(time.DateOnly)
	streak.LastDay = &lastDay

	today := midnight(now)
	if last.Equal(today) || last.Equal(today.Add(-day)) {
		streak.Current = run
	}

	return streak
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
