package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dbal0503/MightyMammoths-sub000/internal/schedule"
)

// schedtool inspects the shuttle timetable: it prints a day's departures for
// one direction and, given a clock time, the next departure after it.
func main() {
	var (
		path      = flag.String("schedule", "", "timetable YAML path (empty uses the embedded timetable)")
		day       = flag.String("day", time.Now().Weekday().String(), "day of week, e.g. Monday")
		direction = flag.String("direction", "SGW", "boarding campus, SGW or LOY")
		at        = flag.String("at", "", "clock time HH:MM; when set, print the next departure after it")
	)
	flag.Parse()

	table, err := loadTable(*path)
	if err != nil {
		log.Fatal(err)
	}

	departures, ok := table.Departures(*day, *direction)
	if !ok {
		fmt.Printf("no service on %s from %s\n", *day, *direction)
		os.Exit(0)
	}

	fmt.Printf("%s from %s:\n", *day, *direction)
	for _, d := range departures {
		fmt.Printf("  %s\n", d)
	}

	if *at == "" {
		return
	}

	next, err := table.NextDeparture(*day, *direction, *at)
	switch {
	case errors.Is(err, schedule.ErrNoMoreToday):
		fmt.Printf("next after %s: no more buses today\n", *at)
	case err != nil:
		log.Fatal(err)
	default:
		fmt.Printf("next after %s: %s\n", *at, next)
	}
}

func loadTable(path string) (*schedule.Table, error) {
	if path == "" {
		return schedule.Default(), nil
	}
	return schedule.Load(path)
}
