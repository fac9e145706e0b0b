package e1rm

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

const (
	fieldTimestamp         = "workout_timestamp"
	fieldDate              = "workout_date"
	fieldOriginalEquipment = "_originalEquipment"

	dailyTicksMaxSpan = 10 * day
)

// UnifiedDataPoint is one day of the chart. Values holds one entry per
// combination key, nil when nothing was lifted with it that day.
// OriginalEquipment keeps the raw equipment behind a merged series.
type UnifiedDataPoint struct {
	WorkoutTimestamp  int64
	WorkoutDate       string
	Values            map[string]*float64
	OriginalEquipment map[string]string
}

// MarshalJSON flattens the values into top level fields, keyed by the
// combination key.
func (p UnifiedDataPoint) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(p.Values)+3)
	for k, v := range p.Values {
		fields[k] = v
	}
	fields[fieldTimestamp] = p.WorkoutTimestamp
	fields[fieldDate] = p.WorkoutDate

	originalEquipment := p.OriginalEquipment
	if originalEquipment == nil {
		originalEquipment = map[string]string{}
	}
	fields[fieldOriginalEquipment] = originalEquipment

	return json.Marshal(fields)
}

func (p *UnifiedDataPoint) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	point := UnifiedDataPoint{
		Values:            make(map[string]*float64),
		OriginalEquipment: make(map[string]string),
	}
	for k, raw := range fields {
		var err error
		switch k {
		case fieldTimestamp:
			err = json.Unmarshal(raw, &point.WorkoutTimestamp)
		case fieldDate:
			err = json.Unmarshal(raw, &point.WorkoutDate)
		case fieldOriginalEquipment:
			err = json.Unmarshal(raw, &point.OriginalEquipment)
		default:
			var v *float64
			err = json.Unmarshal(raw, &v)
			point.Values[k] = v
		}
		if err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
	}

	*p = point
	return nil
}

type Chart struct {
	ChartData []UnifiedDataPoint `json:"chartData"`
	Domain    [2]int64           `json:"domain"`
	Ticks     []int64            `json:"ticks"`
	Keys      []string           `json:"keys"`
}

func emptyChart(keys []string) Chart {
	if keys == nil {
		keys = []string{}
	}
	return Chart{
		ChartData: []UnifiedDataPoint{},
		Domain:    [2]int64{0, 0},
		Ticks:     []int64{},
		Keys:      keys,
	}
}

// BuildChart turns the sparse daily maxes into one point per calendar day of
// the range. Keys are the series carried by every point; when nil they are
// discovered from the history. Rows with an unparseable date or a non-positive
// value are skipped, and an empty history gives an empty chart.
func BuildChart(history []DailyMaxE1RM, rng Range, keys []string, now time.Time) Chart {
	if keys == nil {
		keys = DiscoverKeys(history)
	}

	start, end, ok := ResolveRange(history, rng, now)
	if !ok {
		return emptyChart(keys)
	}

	byDate := make(map[string][]DailyMaxE1RM)
	for _, row := range history {
		if _, valid := row.valid(); !valid {
			continue
		}
		byDate[row.WorkoutDate] = append(byDate[row.WorkoutDate], row)
	}

	points := make([]UnifiedDataPoint, 0, int(end.Sub(start)/day)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		point := UnifiedDataPoint{
			WorkoutTimestamp:  d.UnixMilli(),
			WorkoutDate:       date,
			Values:            make(map[string]*float64, len(keys)),
			OriginalEquipment: make(map[string]string),
		}
		for _, k := range keys {
			point.Values[k] = nil
		}

		for _, row := range byDate[date] {
			k := Key(row.Variation, row.EquipmentType)
			if _, known := point.Values[k]; !known {
				continue
			}
			v := row.MaxE1RM
			point.Values[k] = &v
			if row.EquipmentType != nil {
				point.OriginalEquipment[k] = *row.EquipmentType
			}
		}

		points = append(points, point)
	}

	return Chart{
		ChartData: points,
		Domain:    [2]int64{start.UnixMilli(), end.UnixMilli() + 1},
		Ticks:     Ticks(rng, start, end),
		Keys:      keys,
	}
}

// Ticks returns the time axis ticks. A year gets one tick per month, short
// spans get one per day and everything else gets the quartiles. The end is
// always the last tick.
func Ticks(rng Range, start, end time.Time) []int64 {
	startMs, endMs := start.UnixMilli(), end.UnixMilli()
	var ticks []int64

	switch {
	case rng == RangeYear:
		ticks = append(ticks, startMs)
		month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		for ; !month.After(end); month = month.AddDate(0, 1, 0) {
			ticks = append(ticks, month.UnixMilli())
		}
	case end.Sub(start) <= dailyTicksMaxSpan:
		for d := start.AddDate(0, 0, 1); d.Before(end); d = d.AddDate(0, 0, 1) {
			ticks = append(ticks, d.UnixMilli())
		}
	default:
		total := endMs - startMs
		ticks = append(ticks,
			startMs,
			startMs+total/4,
			startMs+total/2,
			startMs+total*3/4,
			endMs,
		)
	}

	if len(ticks) == 0 || ticks[len(ticks)-1] != endMs {
		ticks = append(ticks, endMs)
	}
	return uniqueSorted(ticks)
}

func uniqueSorted(values []int64) []int64 {
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	unique := make([]int64, 0, len(values))
	for _, v := range values {
		if len(unique) > 0 && unique[len(unique)-1] == v {
			continue
		}
		unique = append(unique, v)
	}
	return unique
}
