package workout

type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

func SecondsToDuration(total int) Duration {
	if total < 0 {
		total = 0
	}
	return Duration{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// TotalSeconds never returns a negative value.
func (d Duration) TotalSeconds() int {
	total := d.Hours*3600 + d.Minutes*60 + d.Seconds
	if total < 0 {
		return 0
	}
	return total
}

// Normalize carries overflowing seconds and minutes into the bigger units.
func (d Duration) Normalize() Duration {
	return SecondsToDuration(d.TotalSeconds())
}

func (d Duration) IsZero() bool {
	return d.TotalSeconds() == 0
}
