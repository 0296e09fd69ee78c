package domain

import (
	"fmt"
	"math"
	"time"
)

// ToKmh converts a speed in meters per second to kilometers per hour.
// Negative and zero inputs pass through unchanged.
func ToKmh(metersPerSecond float64) float64 {
	return metersPerSecond * 3.6
}

// Round rounds half away from zero at the given number of decimals.
func Round(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

func roundMapValues(values map[int64]float64, decimals int) map[int64]float64 {
	for key, value := range values {
		values[key] = Round(value, decimals)
	}
	return values
}

// FormatDuration renders a second count as HH:MM:SS. The hour field is not
// capped at 24 but is always at least two digits.
func FormatDuration(totalSeconds int64) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatLocalTimestamp renders a local-wall-clock epoch as YYYY-MM-DD-HH:MM:SS.
// The UTC offset was already folded into the integer upstream, so the instant
// is formatted with UTC fields and no further conversion.
func FormatLocalTimestamp(localEpochSeconds int64) string {
	return time.Unix(localEpochSeconds, 0).UTC().Format("2006-01-02-15:04:05")
}

// ISOWeek returns the ISO-8601 year and week number for a local-wall-clock
// epoch. Weeks run Monday through Sunday and week 1 is the week containing the
// year's first Thursday, so the year may differ from the calendar year near
// January 1st.
func ISOWeek(localEpochSeconds int64) (year, week int) {
	return time.Unix(localEpochSeconds, 0).UTC().ISOWeek()
}
