package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableWith(t *testing.T, day, direction string, times []string) *Table {
	t.Helper()
	return &Table{days: map[string]map[string][]string{
		day: {direction: times},
	}}
}

func TestNextDeparture(t *testing.T) {
	table := tableWith(t, "Monday", "SGW", []string{"08:00", "09:30", "11:00"})

	t.Run("time between departures returns the next one", func(t *testing.T) {
		next, err := table.NextDeparture("Monday", "SGW", "08:15")
		require.NoError(t, err)
		assert.Equal(t, "09:30", next)
	})

	t.Run("exact departure time returns that departure", func(t *testing.T) {
		next, err := table.NextDeparture("Monday", "SGW", "09:30")
		require.NoError(t, err)
		assert.Equal(t, "09:30", next)
	})

	t.Run("before first departure returns the first", func(t *testing.T) {
		next, err := table.NextDeparture("Monday", "SGW", "06:00")
		require.NoError(t, err)
		assert.Equal(t, "08:00", next)
	})

	t.Run("after last departure is no more buses today", func(t *testing.T) {
		_, err := table.NextDeparture("Monday", "SGW", "18:00")
		assert.ErrorIs(t, err, ErrNoMoreToday)
	})

	t.Run("one minute after last departure is no more buses today", func(t *testing.T) {
		_, err := table.NextDeparture("Monday", "SGW", "11:01")
		assert.ErrorIs(t, err, ErrNoMoreToday)
	})

	t.Run("unknown day is no service", func(t *testing.T) {
		_, err := table.NextDeparture("Saturday", "SGW", "10:00")
		assert.ErrorIs(t, err, ErrNoService)
	})

	t.Run("unknown direction is no service", func(t *testing.T) {
		_, err := table.NextDeparture("Monday", "LOY", "10:00")
		assert.ErrorIs(t, err, ErrNoService)
	})

	t.Run("malformed clock time is an error", func(t *testing.T) {
		_, err := table.NextDeparture("Monday", "SGW", "9h30")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoService)
	})
}

// NextDeparture must be a non-decreasing step function of the query time.
func TestNextDepartureMonotonic(t *testing.T) {
	table := tableWith(t, "Monday", "SGW", []string{"08:00", "09:30", "11:00", "14:45"})

	queries := []string{"00:00", "07:59", "08:00", "08:01", "09:29", "09:30", "10:59", "11:00", "14:44", "14:45"}

	prev := ""
	for _, q := range queries {
		next, err := table.NextDeparture("Monday", "SGW", q)
		require.NoError(t, err, "query %s", q)
		assert.GreaterOrEqual(t, next, prev, "query %s", q)
		assert.GreaterOrEqual(t, next, q, "query %s", q)
		prev = next
	}
}

func TestDefaultTable(t *testing.T) {
	table := Default()

	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		for _, direction := range []string{"SGW", "LOY"} {
			times, ok := table.Departures(day, direction)
			require.True(t, ok, "%s/%s", day, direction)
			assert.NotEmpty(t, times, "%s/%s", day, direction)
		}
	}

	_, err := table.NextDeparture("Saturday", "SGW", "10:00")
	assert.ErrorIs(t, err, ErrNoService)

	_, err = table.NextDeparture("Sunday", "LOY", "10:00")
	assert.ErrorIs(t, err, ErrNoService)
}
