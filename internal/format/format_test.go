package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCLP(t *testing.T) {
	require.Equal(t, "$34.990", CLP(34990))
	require.Equal(t, "$1.234.567", CLP(1234567))
	require.Equal(t, "$0", CLP(0))
}

func TestNumber(t *testing.T) {
	require.Equal(t, "1.234.567", Number(1234567))
	require.Equal(t, "120", Number(120))
}

func TestPercent(t *testing.T) {
	require.Equal(t, "12.3%", Percent(12.345, 1))
	require.Equal(t, "48%", Percent(48.2, 0))
}

func TestCompact(t *testing.T) {
	require.Equal(t, "999", Compact(999))
	require.Equal(t, "1.5K", Compact(1500))
	require.Equal(t, "2.5M", Compact(2_500_000))
	require.Equal(t, "3.2B", Compact(3_200_000_000))
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2026, 2, 4, 12, 0, 0, 0, time.UTC)

	require.Equal(t, "hace 10 min", RelativeDate(now.Add(-10*time.Minute), now))
	require.Equal(t, "hace 3h", RelativeDate(now.Add(-3*time.Hour), now))
	require.Equal(t, "hace 2d", RelativeDate(now.AddDate(0, 0, -2), now))
	require.Equal(t, "20 ene", RelativeDate(now.AddDate(0, 0, -15), now))
}

func TestDate(t *testing.T) {
	require.Equal(t, "4 feb 2026", Date(time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)))
}
