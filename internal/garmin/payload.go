// Package garmin maps the Garmin push payload onto the canonical session
// model.
package garmin

// Activity is one entry in the activityDetails array of a Garmin push. Fields
// missing from the wire payload decode to their zero values.
type Activity struct {
	UserID     string   `json:"userId"`
	ActivityID int64    `json:"activityId"`
	Summary    Summary  `json:"summary"`
	Samples    []Sample `json:"samples"`
	Laps       []Lap    `json:"laps"`
}

// Summary is the per-activity summary block.
type Summary struct {
	ActivityName                     string  `json:"activityName"`
	ActivityType                     string  `json:"activityType"`
	StartTimeInSeconds               int64   `json:"startTimeInSeconds"`
	StartTimeOffsetInSeconds         int64   `json:"startTimeOffsetInSeconds"`
	DurationInSeconds                int64   `json:"durationInSeconds"`
	AverageHeartRateInBeatsPerMinute float64 `json:"averageHeartRateInBeatsPerMinute"`
	AverageSpeedInMetersPerSecond    float64 `json:"averageSpeedInMetersPerSecond"`
	AveragePaceInMinutesPerKilometer float64 `json:"averagePaceInMinutesPerKilometer"`
	ActiveKilocalories               float64 `json:"activeKilocalories"`
	DistanceInMeters                 float64 `json:"distanceInMeters"`
	MaxHeartRateInBeatsPerMinute     float64 `json:"maxHeartRateInBeatsPerMinute"`
	MaxPaceInMinutesPerKilometer     float64 `json:"maxPaceInMinutesPerKilometer"`
	MaxSpeedInMetersPerSecond        float64 `json:"maxSpeedInMetersPerSecond"`
	TotalElevationGainInMeters       float64 `json:"totalElevationGainInMeters"`
}

// Sample is one time-indexed measurement, keyed by elapsed seconds into the
// session.
type Sample struct {
	TimerDurationInSeconds int64   `json:"timerDurationInSeconds"`
	ElevationInMeters      float64 `json:"elevationInMeters"`
	SpeedMetersPerSecond   float64 `json:"speedMetersPerSecond"`
	HeartRate              float64 `json:"heartRate"`
	AirTemperatureCelcius  float64 `json:"airTemperatureCelcius"`
	TotalDistanceInMeters  float64 `json:"totalDistanceInMeters"`
}

// Lap marks where a lap started. Only the start offset is retained downstream.
type Lap struct {
	StartTimeInSeconds int64 `json:"startTimeInSeconds"`
}
