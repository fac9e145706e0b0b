package workout

import (
	"encoding/json"
	"errors"
	"fmt"
)

type SetKind string

const (
	SetKindStrength SetKind = "strength"
	SetKindCardio   SetKind = "cardio"
)

var ErrUnknownSetKind = errors.New("unknown set kind")

// Set is either a *StrengthSet or a *CardioSet. The shape of a set is fixed
// when it is created and never changes afterwards.
type Set interface {
	SetID() string
	Kind() SetKind
	IsCompleted() bool
	SetCompleted(completed bool)
	Clone() Set

	sealed()
}

type StrengthSet struct {
	ID            string  `json:"id"`
	ExerciseID    string  `json:"exerciseId"`
	Weight        float64 `json:"weight"`
	Reps          *int    `json:"reps"`
	TimeSeconds   *int    `json:"time_seconds"`
	EquipmentType *string `json:"equipmentType,omitempty"`
	Variation     *string `json:"variation,omitempty"`
	Completed     bool    `json:"completed"`
}

func (s *StrengthSet) SetID() string       { return s.ID }
func (s *StrengthSet) Kind() SetKind       { return SetKindStrength }
func (s *StrengthSet) IsCompleted() bool   { return s.Completed }
func (s *StrengthSet) SetCompleted(c bool) { s.Completed = c }
func (s *StrengthSet) sealed()             {}
func (s *StrengthSet) IsStatic() bool      { return s.Reps == nil && s.TimeSeconds != nil }
func (s *StrengthSet) Clone() Set          { return s.clone() }

func (s *StrengthSet) clone() *StrengthSet {
	c := *s
	c.Reps = cloneInt(s.Reps)
	c.TimeSeconds = cloneInt(s.TimeSeconds)
	c.EquipmentType = cloneString(s.EquipmentType)
	c.Variation = cloneString(s.Variation)
	return &c
}

// ActiveMetric returns reps for rep based sets and seconds for static ones.
func (s *StrengthSet) ActiveMetric() int {
	if s.IsStatic() {
		return *s.TimeSeconds
	}
	if s.Reps == nil {
		return 0
	}
	return *s.Reps
}

type CardioSet struct {
	ID                  string   `json:"id"`
	ExerciseID          string   `json:"exerciseId"`
	Time                Duration `json:"time"`
	DistanceKm          *float64 `json:"distance_km,omitempty"`
	PaceMinPerKm        *float64 `json:"pace_min_per_km,omitempty"`
	HeartRateBPM        []int    `json:"heart_rate_bpm,omitempty"`
	TargetHeartRateZone *int     `json:"target_heart_rate_zone,omitempty"`
	PerceivedExertion   *int     `json:"perceived_exertion,omitempty"`
	CaloriesBurned      *int     `json:"calories_burned,omitempty"`
	Completed           bool     `json:"completed"`
}

func (s *CardioSet) SetID() string       { return s.ID }
func (s *CardioSet) Kind() SetKind       { return SetKindCardio }
func (s *CardioSet) IsCompleted() bool   { return s.Completed }
func (s *CardioSet) SetCompleted(c bool) { s.Completed = c }
func (s *CardioSet) sealed()             {}
func (s *CardioSet) Clone() Set          { return s.clone() }

func (s *CardioSet) clone() *CardioSet {
	c := *s
	c.DistanceKm = cloneFloat(s.DistanceKm)
	c.PaceMinPerKm = cloneFloat(s.PaceMinPerKm)
	if s.HeartRateBPM != nil {
		c.HeartRateBPM = append([]int(nil), s.HeartRateBPM...)
	}
	c.TargetHeartRateZone = cloneInt(s.TargetHeartRateZone)
	c.PerceivedExertion = cloneInt(s.PerceivedExertion)
	c.CaloriesBurned = cloneInt(s.CaloriesBurned)
	return &c
}

// AvgHeartRate returns the mean of the recorded heart rate samples.
func (s *CardioSet) AvgHeartRate() (int, bool) {
	if len(s.HeartRateBPM) == 0 {
		return 0, false
	}
	sum := 0
	for _, hr := range s.HeartRateBPM {
		sum += hr
	}
	return sum / len(s.HeartRateBPM), true
}

func IsStrengthSet(s Set) bool {
	_, ok := s.(*StrengthSet)
	return ok
}

func IsCardioSet(s Set) bool {
	_, ok := s.(*CardioSet)
	return ok
}

// Sets is an ordered list of sets, the set number is the position + 1.
type Sets []Set

func (sets Sets) Clone() Sets {
	if sets == nil {
		return nil
	}
	c := make(Sets, len(sets))
	for i, s := range sets {
		c[i] = s.Clone()
	}
	return c
}

// LastStrength returns the last strength set in the list.
func (sets Sets) LastStrength() (*StrengthSet, bool) {
	for i := len(sets) - 1; i >= 0; i-- {
		if s, ok := sets[i].(*StrengthSet); ok {
			return s, true
		}
	}
	return nil, false
}

// LastCardio returns the last cardio set in the list.
func (sets Sets) LastCardio() (*CardioSet, bool) {
	for i := len(sets) - 1; i >= 0; i-- {
		if s, ok := sets[i].(*CardioSet); ok {
			return s, true
		}
	}
	return nil, false
}

type strengthSetJSON struct {
	Kind SetKind `json:"kind"`
	*StrengthSet
}

type cardioSetJSON struct {
	Kind SetKind `json:"kind"`
	*CardioSet
}

func (sets Sets) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(sets))
	for _, s := range sets {
		var (
			raw []byte
			err error
		)
		switch v := s.(type) {
		case *StrengthSet:
			raw, err = json.Marshal(strengthSetJSON{Kind: SetKindStrength, StrengthSet: v})
		case *CardioSet:
			raw, err = json.Marshal(cardioSetJSON{Kind: SetKindCardio, CardioSet: v})
		default:
			return nil, fmt.Errorf("marshal set %T: %w", s, ErrUnknownSetKind)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

func (sets *Sets) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	if raws == nil {
		*sets = nil
		return nil
	}

	parsed := make(Sets, 0, len(raws))
	for i, raw := range raws {
		var head struct {
			Kind SetKind `json:"kind"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return fmt.Errorf("set %d: %w", i, err)
		}
		switch head.Kind {
		case SetKindStrength:
			s := &StrengthSet{}
			if err := json.Unmarshal(raw, s); err != nil {
				return fmt.Errorf("strength set %d: %w", i, err)
			}
			parsed = append(parsed, s)
		case SetKindCardio:
			s := &CardioSet{}
			if err := json.Unmarshal(raw, s); err != nil {
				return fmt.Errorf("cardio set %d: %w", i, err)
			}
			parsed = append(parsed, s)
		default:
			return fmt.Errorf("set %d kind [%s]: %w", i, head.Kind, ErrUnknownSetKind)
		}
	}
	*sets = parsed
	return nil
}
