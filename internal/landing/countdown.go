package landing

import "time"

const day = 24 * time.Hour

type TimeLeft struct {
	Days     int  `json:"days"`
	Hours    int  `json:"hours"`
	Minutes  int  `json:"minutes"`
	Seconds  int  `json:"seconds"`
	Launched bool `json:"launched"`
}

// Countdown splits the time until target into whole units. Once target has
// passed every unit is zero and Launched is set.
func Countdown(target, now time.Time) TimeLeft {
	d := target.Sub(now)
	if d <= 0 {
		return TimeLeft{Launched: true}
	}
	return TimeLeft{
		Days:    int(d / day),
		Hours:   int(d % day / time.Hour),
		Minutes: int(d % time.Hour / time.Minute),
		Seconds: int(d % time.Minute / time.Second),
	}
}
