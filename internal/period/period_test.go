package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDaily(t *testing.T) {
	ref := time.Date(2024, 2, 15, 13, 45, 12, 0, time.UTC)
	rng, err := Resolve(ScopeDaily, ref)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 15), rng.Start)
	assert.Equal(t, date(2024, 2, 16), rng.End)
}

func TestResolveWeekly(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
	}{
		{"mid-week ref", time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC), date(2024, 2, 11)}, // Thursday -> previous Sunday
		{"sunday ref starts its own week", date(2024, 2, 11), date(2024, 2, 11)},
		{"saturday ref", date(2024, 2, 17), date(2024, 2, 11)},
		{"monday ref", date(2024, 2, 12), date(2024, 2, 11)},
		{"week spanning month boundary", date(2024, 3, 1), date(2024, 2, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := Resolve(ScopeWeekly, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, time.Sunday, rng.Start.Weekday())
			assert.Equal(t, tt.wantStart, rng.Start)
			assert.Equal(t, rng.Start.AddDate(0, 0, 7), rng.End)
		})
	}
}

func TestResolveMonthly(t *testing.T) {
	rng, err := Resolve(ScopeMonthly, date(2024, 2, 15))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 1), rng.Start)
	assert.Equal(t, date(2024, 3, 1), rng.End)

	// December rolls into the next year
	rng, err = Resolve(ScopeMonthly, date(2023, 12, 31))
	require.NoError(t, err)
	assert.Equal(t, date(2023, 12, 1), rng.Start)
	assert.Equal(t, date(2024, 1, 1), rng.End)
}

func TestResolveYearly(t *testing.T) {
	rng, err := Resolve(ScopeYearly, date(2024, 7, 4))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), rng.Start)
	assert.Equal(t, date(2025, 1, 1), rng.End)
}

func TestResolveAll(t *testing.T) {
	rng, err := Resolve(ScopeAll, time.Now())
	require.NoError(t, err)
	assert.True(t, rng.Contains(date(2003, 6, 1)))
	assert.True(t, rng.Contains(date(2099, 12, 31)))
}

func TestResolveCustomIsSingleDay(t *testing.T) {
	rng, err := Resolve(ScopeCustom, time.Date(2024, 5, 20, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 5, 20), rng.Start)
	assert.Equal(t, date(2024, 5, 21), rng.End)
}

func TestResolveUnknownScope(t *testing.T) {
	_, err := Resolve(Scope("fortnightly"), time.Now())
	assert.Error(t, err)
}

func TestRangeContainsIsHalfOpen(t *testing.T) {
	rng, err := Resolve(ScopeDaily, date(2024, 2, 15))
	require.NoError(t, err)
	assert.True(t, rng.Contains(rng.Start))
	assert.True(t, rng.Contains(rng.End.Add(-time.Second)))
	assert.False(t, rng.Contains(rng.End))
	assert.False(t, rng.Contains(rng.Start.Add(-time.Second)))
}

func TestFromQuery(t *testing.T) {
	now := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)

	t.Run("explicit date selects that day", func(t *testing.T) {
		rng, err := FromQuery("", "2024-05-20", now)
		require.NoError(t, err)
		assert.Equal(t, date(2024, 5, 20), rng.Start)
		assert.Equal(t, date(2024, 5, 21), rng.End)
	})

	t.Run("scope anchored at date", func(t *testing.T) {
		rng, err := FromQuery("monthly", "2024-05-20", now)
		require.NoError(t, err)
		assert.Equal(t, date(2024, 5, 1), rng.Start)
		assert.Equal(t, date(2024, 6, 1), rng.End)
	})

	t.Run("scope anchored at now", func(t *testing.T) {
		rng, err := FromQuery("weekly", "", now)
		require.NoError(t, err)
		assert.Equal(t, date(2024, 2, 11), rng.Start)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := FromQuery("daily", "20-05-2024", now)
		assert.Error(t, err)
	})
}

func TestParseScope(t *testing.T) {
	s, err := ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, ScopeDaily, s)

	s, err = ParseScope("monthly")
	require.NoError(t, err)
	assert.Equal(t, ScopeMonthly, s)

	_, err = ParseScope("quarterly")
	assert.Error(t, err)
}
