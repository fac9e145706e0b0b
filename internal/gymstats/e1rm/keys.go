package e1rm

import (
	"sort"
	"strings"
)

const (
	DefaultPart = "Default"
	// DumbbellKettlebellCombo merges both into one series, the lifter who
	// alternates between them sees one continuous line.
	DumbbellKettlebellCombo = "DB_KB_COMBO"
)

// Key derives the combination key of a variation and equipment pair.
func Key(variation, equipment *string) string {
	variationPart := DefaultPart
	if variation != nil && *variation != "" && !strings.EqualFold(*variation, "standard") {
		variationPart = *variation
	}

	equipmentPart := DefaultPart
	if equipment != nil && *equipment != "" {
		switch *equipment {
		case "Dumbbell", "Kettlebell":
			equipmentPart = DumbbellKettlebellCombo
		default:
			equipmentPart = *equipment
		}
	}

	return variationPart + "|" + equipmentPart
}

// SortKeys orders keys with a default variation first, then lexically.
// The order is also the series color order, so it must stay stable.
func SortKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		iDefault := strings.HasPrefix(keys[i], DefaultPart+"|")
		jDefault := strings.HasPrefix(keys[j], DefaultPart+"|")
		if iDefault != jDefault {
			return iDefault
		}
		return keys[i] < keys[j]
	})
}

// DiscoverKeys scans the whole history once and returns the sorted set of
// combination keys found in it.
func DiscoverKeys(history []DailyMaxE1RM) []string {
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, row := range history {
		if _, ok := row.valid(); !ok {
			continue
		}
		k := Key(row.Variation, row.EquipmentType)
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// MostFrequentKey returns the key with the most rows. Ties go to the key
// sorted first.
func MostFrequentKey(history []DailyMaxE1RM) (string, bool) {
	counts := make(map[string]int)
	for _, row := range history {
		if _, ok := row.valid(); !ok {
			continue
		}
		counts[Key(row.Variation, row.EquipmentType)]++
	}

	best, bestCount := "", 0
	for _, k := range DiscoverKeys(history) {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best, bestCount > 0
}

// ResolveActiveKeys keeps the current keys that are still available. When
// none are left (first load, or the exercise changed), the most frequent key
// is selected alone.
func ResolveActiveKeys(history []DailyMaxE1RM, current []string) []string {
	available := DiscoverKeys(history)
	isAvailable := make(map[string]bool, len(available))
	for _, k := range available {
		isAvailable[k] = true
	}

	active := make([]string, 0, len(current))
	added := make(map[string]bool)
	for _, k := range current {
		if isAvailable[k] && !added[k] {
			active = append(active, k)
			added[k] = true
		}
	}
	if len(active) > 0 {
		SortKeys(active)
		return active
	}

	if k, ok := MostFrequentKey(history); ok {
		return []string{k}
	}
	return []string{}
}
