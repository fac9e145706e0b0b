package e1rm

import (
	"math"
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

// SetRecord is one completed strength set, as read back from the workout history.
type SetRecord struct {
	WorkoutDate   time.Time
	Weight        float64
	Reps          int
	Variation     *string
	EquipmentType *string
}

// DailyMaxE1RM is the best estimated one rep max of a single day, for one
// variation and equipment combination.
type DailyMaxE1RM struct {
	WorkoutDate   string  `json:"workout_date"`
	Variation     *string `json:"variation"`
	EquipmentType *string `json:"equipment_type"`
	MaxE1RM       float64 `json:"max_e1rm"`
}

// Estimate uses the Epley formula. A single rep is the max itself.
func Estimate(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return weight * (1 + float64(reps)/30)
}

// DailyMaxes reduces the set records to one row per day, variation and
// equipment, holding the highest estimate. Rows are sorted by date.
func DailyMaxes(records []SetRecord) []DailyMaxE1RM {
	type groupKey struct {
		date      string
		variation string
		equipment string
		hasVar    bool
		hasEquip  bool
	}

	maxes := make(map[groupKey]*DailyMaxE1RM)
	for _, r := range records {
		estimate := Estimate(r.Weight, r.Reps)
		if estimate <= 0 || math.IsInf(estimate, 0) || math.IsNaN(estimate) {
			continue
		}

		gk := groupKey{date: r.WorkoutDate.UTC().Format(DateLayout)}
		if r.Variation != nil {
			gk.variation, gk.hasVar = *r.Variation, true
		}
		if r.EquipmentType != nil {
			gk.equipment, gk.hasEquip = *r.EquipmentType, true
		}

		current, ok := maxes[gk]
		if !ok {
			row := &DailyMaxE1RM{
				WorkoutDate: gk.date,
				MaxE1RM:     estimate,
			}
			if gk.hasVar {
				v := gk.variation
				row.Variation = &v
			}
			if gk.hasEquip {
				e := gk.equipment
				row.EquipmentType = &e
			}
			maxes[gk] = row
			continue
		}
		if estimate > current.MaxE1RM {
			current.MaxE1RM = estimate
		}
	}

	rows := make([]DailyMaxE1RM, 0, len(maxes))
	for _, row := range maxes {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.WorkoutDate != b.WorkoutDate {
			return a.WorkoutDate < b.WorkoutDate
		}
		if deref(a.Variation) != deref(b.Variation) {
			return deref(a.Variation) < deref(b.Variation)
		}
		if deref(a.EquipmentType) != deref(b.EquipmentType) {
			return deref(a.EquipmentType) < deref(b.EquipmentType)
		}
		// nil before an explicit empty string
		if (a.Variation == nil) != (b.Variation == nil) {
			return a.Variation == nil
		}
		return a.EquipmentType == nil && b.EquipmentType != nil
	})
	return rows
}

// valid reports whether the row can be placed on a chart, and returns its day.
func (d DailyMaxE1RM) valid() (time.Time, bool) {
	if math.IsNaN(d.MaxE1RM) || math.IsInf(d.MaxE1RM, 0) || d.MaxE1RM <= 0 {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(DateLayout, d.WorkoutDate, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
