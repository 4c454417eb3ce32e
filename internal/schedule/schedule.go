// Package schedule is the static shuttle timetable: per weekday, per boarding
// campus, a strictly ascending list of "HH:MM" departure times. The table is
// loaded once at startup and answers next-departure lookups by binary search.
package schedule

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed schedule.yaml
var defaultScheduleYAML []byte

var (
	// ErrNoService means the (day, direction) key has no timetable at all,
	// e.g. a weekend or an unknown direction. Terminal for the day; retrying
	// later the same day cannot succeed.
	ErrNoService = errors.New("no shuttle service for this day and direction")

	// ErrNoMoreToday means service exists today but the last departure has
	// already left.
	ErrNoMoreToday = errors.New("no more buses today")
)

// Table maps weekday name -> boarding campus -> ascending departure times.
type Table struct {
	days map[string]map[string][]string
}

// Default returns the table built from the embedded timetable.
func Default() *Table {
	t, err := parse(defaultScheduleYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded schedule data: %v", err))
	}
	return t
}

// Load reads a timetable from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	t, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("load schedule %q: %w", path, err)
	}

	return t, nil
}

func parse(data []byte) (*Table, error) {
	days := make(map[string]map[string][]string)
	if err := yaml.Unmarshal(data, &days); err != nil {
		return nil, fmt.Errorf("parse schedule yaml: %w", err)
	}

	for day, directions := range days {
		for direction, times := range directions {
			prev := -1
			for _, hhmm := range times {
				v, err := clockValue(hhmm)
				if err != nil {
					return nil, fmt.Errorf("schedule %s/%s: %w", day, direction, err)
				}
				if v <= prev {
					return nil, fmt.Errorf("schedule %s/%s: departures not strictly ascending at %q", day, direction, hhmm)
				}
				prev = v
			}
		}
	}

	return &Table{days: days}, nil
}

// Departures returns the raw departure list for one day and direction.
// The second return is false when there is no service for the key.
func (t *Table) Departures(day, direction string) ([]string, bool) {
	directions, ok := t.days[day]
	if !ok {
		return nil, false
	}
	times, ok := directions[direction]
	return times, ok
}

// NextDeparture returns the earliest departure at or after the "HH:MM" clock
// time at. It returns ErrNoService when the day or direction has no
// timetable, and ErrNoMoreToday when at is past the last departure.
func (t *Table) NextDeparture(day, direction, at string) (string, error) {
	times, ok := t.Departures(day, direction)
	if !ok || len(times) == 0 {
		return "", ErrNoService
	}

	target, err := clockValue(at)
	if err != nil {
		return "", fmt.Errorf("next departure: %w", err)
	}

	last, err := clockValue(times[len(times)-1])
	if err != nil {
		return "", fmt.Errorf("next departure: %w", err)
	}
	if target > last {
		return "", ErrNoMoreToday
	}

	// Lower bound: the first departure >= target, not merely the nearest.
	idx := sort.Search(len(times), func(i int) bool {
		v, e := clockValue(times[i])
		if e != nil {
			err = e
			return true
		}
		return v >= target
	})
	if err != nil {
		return "", fmt.Errorf("next departure: %w", err)
	}
	if idx == len(times) {
		return "", ErrNoMoreToday
	}

	return times[idx], nil
}

// clockValue converts "HH:MM" into a comparable integer (hours*100+minutes).
func clockValue(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, fmt.Errorf("malformed clock time %q", hhmm)
	}

	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("malformed clock time %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", hhmm)
	}

	return h*100 + m, nil
}
