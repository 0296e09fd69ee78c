package domain

// ActivityType is the closed set of canonical activity categories.
type ActivityType string

const (
	ActivityRunning              ActivityType = "RUNNING"
	ActivityStrengthConditioning ActivityType = "STRENGTH_CONDITIONING"
	ActivityOther                ActivityType = "OTHER"
)

// runningActivities holds the Garmin type codes that count as RUNNING.
var runningActivities = map[string]struct{}{
	"RUNNING":           {},
	"INDOOR_RUNNING":    {},
	"OBSTACLE_RUN":      {},
	"STREET_RUNNING":    {},
	"TRACK_RUNNING":     {},
	"TRAIL_RUNNING":     {},
	"TREADMILL_RUNNING": {},
	"ULTRA_RUN":         {},
	"VIRTUAL_RUN":       {},
}

// strengthConditioningActivities holds the Garmin type codes that count as
// STRENGTH_CONDITIONING.
var strengthConditioningActivities = map[string]struct{}{
	"FITNESS_EQUIPMENT": {},
	"BOULDERING":        {},
	"ELLIPTICAL":        {},
	"INDOOR_CARDIO":     {},
	"HIIT":              {},
	"INDOOR_CLIMBING":   {},
	"INDOOR_ROWING":     {},
	"PILATES":           {},
	"STAIR_CLIMBING":    {},
}

// Classify maps a Garmin activity type code onto the canonical categories.
// Unknown or empty codes fall back to ActivityOther. Extending the mapping
// means adding codes to one of the two membership sets above.
func Classify(code string) ActivityType {
	if _, ok := runningActivities[code]; ok {
		return ActivityRunning
	}
	if _, ok := strengthConditioningActivities[code]; ok {
		return ActivityStrengthConditioning
	}
	return ActivityOther
}
