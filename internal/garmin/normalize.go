package garmin

import "example.com/ingest/internal/domain"

// FromActivity builds the canonical training session for one raw activity and
// an already-resolved internal user id. It is pure and total: absent numeric
// fields become zeros, an unknown activity type becomes OTHER, and the local
// timestamp is the UTC start plus the vendor-supplied offset.
func FromActivity(a Activity, userID string) domain.TrainingSession {
	elevation := make(map[int64]float64, len(a.Samples))
	speed := make(map[int64]float64, len(a.Samples))
	heartRate := make(map[int64]float64, len(a.Samples))
	temperature := make(map[int64]float64, len(a.Samples))
	distance := make(map[int64]float64, len(a.Samples))

	for _, sample := range a.Samples {
		// Last write wins when two samples report the same elapsed second.
		key := sample.TimerDurationInSeconds
		elevation[key] = sample.ElevationInMeters
		speed[key] = domain.ToKmh(sample.SpeedMetersPerSecond)
		heartRate[key] = sample.HeartRate
		temperature[key] = sample.AirTemperatureCelcius
		distance[key] = sample.TotalDistanceInMeters
	}

	laps := make([]int64, 0, len(a.Laps))
	for _, lap := range a.Laps {
		laps = append(laps, lap.StartTimeInSeconds)
	}

	return domain.NewTrainingSession(domain.SessionInput{
		UserID:                userID,
		SessionID:             a.ActivityID,
		ActivityName:          a.Summary.ActivityName,
		ActivityType:          domain.Classify(a.Summary.ActivityType),
		TimestampLocalSeconds: a.Summary.StartTimeInSeconds + a.Summary.StartTimeOffsetInSeconds,
		DurationSeconds:       a.Summary.DurationInSeconds,

		AverageHeartRateBpm:      a.Summary.AverageHeartRateInBeatsPerMinute,
		AverageSpeedKmh:          domain.ToKmh(a.Summary.AverageSpeedInMetersPerSecond),
		AveragePaceMinPerKm:      a.Summary.AveragePaceInMinutesPerKilometer,
		ActiveCalories:           a.Summary.ActiveKilocalories,
		DistanceMetersTotal:      a.Summary.DistanceInMeters,
		MaxHeartRateBpm:          a.Summary.MaxHeartRateInBeatsPerMinute,
		MaxPaceMinPerKm:          a.Summary.MaxPaceInMinutesPerKilometer,
		MaxSpeedKmh:              domain.ToKmh(a.Summary.MaxSpeedInMetersPerSecond),
		ElevationGainMetersTotal: a.Summary.TotalElevationGainInMeters,

		ElevationGainMeters: elevation,
		SpeedKmh:            speed,
		HeartRate:           heartRate,
		Temperature:         temperature,
		DistanceMeters:      distance,

		Laps: laps,
	})
}
