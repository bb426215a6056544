package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ByDirection keeps the schedules travelling in direction
func ByDirection(list []Details, direction Direction) []Details {
	var out []Details
	for _, d := range list {
		if d.Direction == direction {
			out = append(out, d)
		}
	}
	return out
}

// GroupByTime groups schedules by departure time, earliest first. Within a
// group the input order is kept.
func GroupByTime(list []Details) []Group {
	sorted := append([]Details(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DepartureTime < sorted[j].DepartureTime
	})

	var groups []Group
	for _, d := range sorted {
		if n := len(groups); n > 0 && groups[n-1].Time == d.DepartureTime {
			groups[n-1].Schedules = append(groups[n-1].Schedules, d)
			continue
		}
		groups = append(groups, Group{
			Time:      d.DepartureTime,
			Label:     FormatTime(d.DepartureTime),
			Schedules: []Details{d},
		})
	}
	return groups
}

// NextDeparture returns the earliest schedule leaving strictly after now's
// wall clock minute, or nil when nothing is left today
func NextDeparture(list []Details, now time.Time) *Details {
	current := now.Format("15:04")

	var next *Details
	for i := range list {
		if list[i].DepartureTime <= current {
			continue
		}
		if next == nil || list[i].DepartureTime < next.DepartureTime {
			next = &list[i]
		}
	}
	if next == nil {
		return nil
	}
	cp := *next
	return &cp
}

// FormatTime renders "HH:MM" on a 12 hour clock, e.g. "13:00" as "1:00 PM".
// Input it cannot parse is returned unchanged.
func FormatTime(hhmm string) string {
	hours, minutes, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	hour, err := strconv.Atoi(hours)
	if err != nil {
		return hhmm
	}

	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, minutes, ampm)
}

// Summarize counts schedules, distinct buses and distinct routes
func Summarize(list []Details) Stats {
	buses := make(map[string]struct{})
	routes := make(map[string]struct{})
	for _, d := range list {
		buses[d.BusID] = struct{}{}
		routes[d.RouteID] = struct{}{}
	}
	return Stats{
		Schedules: len(list),
		Buses:     len(buses),
		Routes:    len(routes),
	}
}
