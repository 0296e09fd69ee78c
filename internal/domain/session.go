// Package domain defines the canonical training session model and the
// conversion rules that produce it from vendor measurements.
package domain

// PointsGained is the score credited for one session.
type PointsGained struct {
	Endurance float64 `json:"endurance"`
	Total     float64 `json:"total"`
}

// TrainingSession is the normalized, unit-converted, rounded representation of
// one completed activity. Time-series fields map elapsed seconds into the
// session onto sampled values.
type TrainingSession struct {
	UserID                string
	SessionID             int64
	ActivityName          string
	ActivityType          ActivityType
	TimestampLocalSeconds int64
	TimestampLocal        string
	DurationSeconds       int64
	Duration              string
	PointsGained          PointsGained

	AverageHeartRateBpm      float64
	AverageSpeedKmh          float64
	AveragePaceMinPerKm      float64
	ActiveCalories           float64
	DistanceMetersTotal      float64
	MaxHeartRateBpm          float64
	MaxPaceMinPerKm          float64
	MaxSpeedKmh              float64
	ElevationGainMetersTotal float64

	ElevationGainMeters map[int64]float64
	SpeedKmh            map[int64]float64
	HeartRate           map[int64]float64
	Temperature         map[int64]float64
	DistanceMeters      map[int64]float64

	Laps []int64
}

// SessionInput carries vendor-extracted, unit-converted magnitudes before the
// canonical rounding, formatting and scoring rules are applied.
type SessionInput struct {
	UserID                string
	SessionID             int64
	ActivityName          string
	ActivityType          ActivityType
	TimestampLocalSeconds int64
	DurationSeconds       int64

	AverageHeartRateBpm      float64
	AverageSpeedKmh          float64
	AveragePaceMinPerKm      float64
	ActiveCalories           float64
	DistanceMetersTotal      float64
	MaxHeartRateBpm          float64
	MaxPaceMinPerKm          float64
	MaxSpeedKmh              float64
	ElevationGainMetersTotal float64

	ElevationGainMeters map[int64]float64
	SpeedKmh            map[int64]float64
	HeartRate           map[int64]float64
	Temperature         map[int64]float64
	DistanceMeters      map[int64]float64

	Laps []int64
}

// NewTrainingSession applies the canonical conversion rules: per-column
// rounding, duration and timestamp rendering, and points scoring. It has no
// failure modes; zero values flow through as zeros.
func NewTrainingSession(in SessionInput) TrainingSession {
	points := PointsGained{}
	if in.ActivityType == ActivityRunning {
		earned := Round(in.DistanceMetersTotal/100, 0)
		points = PointsGained{Endurance: earned, Total: earned}
	}

	return TrainingSession{
		UserID:                in.UserID,
		SessionID:             in.SessionID,
		ActivityName:          in.ActivityName,
		ActivityType:          in.ActivityType,
		TimestampLocalSeconds: in.TimestampLocalSeconds,
		TimestampLocal:        FormatLocalTimestamp(in.TimestampLocalSeconds),
		DurationSeconds:       in.DurationSeconds,
		Duration:              FormatDuration(in.DurationSeconds),
		PointsGained:          points,

		AverageHeartRateBpm:      in.AverageHeartRateBpm,
		AverageSpeedKmh:          Round(in.AverageSpeedKmh, 2),
		AveragePaceMinPerKm:      Round(in.AveragePaceMinPerKm, 2),
		ActiveCalories:           in.ActiveCalories,
		DistanceMetersTotal:      Round(in.DistanceMetersTotal, 0),
		MaxHeartRateBpm:          in.MaxHeartRateBpm,
		MaxPaceMinPerKm:          Round(in.MaxPaceMinPerKm, 2),
		MaxSpeedKmh:              Round(in.MaxSpeedKmh, 2),
		ElevationGainMetersTotal: Round(in.ElevationGainMetersTotal, 0),

		ElevationGainMeters: roundMapValues(in.ElevationGainMeters, 0),
		SpeedKmh:            roundMapValues(in.SpeedKmh, 2),
		HeartRate:           in.HeartRate,
		Temperature:         in.Temperature,
		DistanceMeters:      roundMapValues(in.DistanceMeters, 0),

		Laps: in.Laps,
	}
}
