package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func runningInput() SessionInput {
	return SessionInput{
		UserID:                "user-1",
		SessionID:             12345,
		ActivityName:          "Morning Run",
		ActivityType:          ActivityRunning,
		TimestampLocalSeconds: 1625072400,
		DurationSeconds:       3600,

		AverageHeartRateBpm:      151,
		AverageSpeedKmh:          ToKmh(1.2675),
		AveragePaceMinPerKm:      7.8912,
		ActiveCalories:           320,
		DistanceMetersTotal:      4567,
		MaxHeartRateBpm:          176,
		MaxPaceMinPerKm:          5.1234,
		MaxSpeedKmh:              ToKmh(2.5),
		ElevationGainMetersTotal: 12.6,

		ElevationGainMeters: map[int64]float64{0: 10.4, 10: 11.6},
		SpeedKmh:            map[int64]float64{0: 4.5678, 10: 5.4321},
		HeartRate:           map[int64]float64{0: 140.5, 10: 150},
		Temperature:         map[int64]float64{0: 21.5},
		DistanceMeters:      map[int64]float64{0: 0.4, 10: 45.6},

		Laps: []int64{0, 600},
	}
}

func TestNewTrainingSessionRoundsAndFormats(t *testing.T) {
	s := NewTrainingSession(runningInput())

	require.Equal(t, "user-1", s.UserID)
	require.Equal(t, int64(12345), s.SessionID)
	require.Equal(t, int64(1625072400), s.TimestampLocalSeconds)
	require.Equal(t, "2021-06-30-17:00:00", s.TimestampLocal)
	require.Equal(t, "01:00:00", s.Duration)

	require.Equal(t, 4.56, s.AverageSpeedKmh)
	require.Equal(t, 7.89, s.AveragePaceMinPerKm)
	require.Equal(t, 5.12, s.MaxPaceMinPerKm)
	require.Equal(t, 9.0, s.MaxSpeedKmh)
	require.Equal(t, 4567.0, s.DistanceMetersTotal)
	require.Equal(t, 13.0, s.ElevationGainMetersTotal)

	// Heart rate and calories pass through unrounded.
	require.Equal(t, 151.0, s.AverageHeartRateBpm)
	require.Equal(t, 320.0, s.ActiveCalories)

	// Time series are rounded in place at their own precision.
	require.Equal(t, map[int64]float64{0: 10, 10: 12}, s.ElevationGainMeters)
	require.Equal(t, map[int64]float64{0: 4.57, 10: 5.43}, s.SpeedKmh)
	require.Equal(t, map[int64]float64{0: 0, 10: 46}, s.DistanceMeters)
	require.Equal(t, map[int64]float64{0: 140.5, 10: 150}, s.HeartRate)
	require.Equal(t, map[int64]float64{0: 21.5}, s.Temperature)

	require.Equal(t, []int64{0, 600}, s.Laps)
}

func TestPointsGainedForRunning(t *testing.T) {
	s := NewTrainingSession(runningInput())
	require.Equal(t, PointsGained{Endurance: 46, Total: 46}, s.PointsGained)
}

func TestPointsGainedZeroForOtherCategories(t *testing.T) {
	in := runningInput()
	in.ActivityType = ActivityStrengthConditioning
	require.Equal(t, PointsGained{}, NewTrainingSession(in).PointsGained)

	in.ActivityType = ActivityOther
	require.Equal(t, PointsGained{}, NewTrainingSession(in).PointsGained)
}

func TestBuildNotification(t *testing.T) {
	event := NewTrainingSession(runningInput()).BuildNotification()

	require.Equal(t, NotificationSource, event.Source)
	require.Equal(t, "activity_processed", event.EventType)
	require.Equal(t, "user-1", event.Detail.UserID)
	// The raw local epoch, not the formatted rendering.
	require.Equal(t, int64(1625072400), event.Detail.TimestampLocal)
	require.Equal(t, int64(12345), event.Detail.SessionID)
	require.Equal(t, ActivityRunning, event.Detail.ActivityType)
	require.Equal(t, 4567.0, event.Detail.DistanceInMeters)
	require.JSONEq(t, `{"endurance":46,"total":46}`, event.Detail.PointsGained)
}

func TestBuildLogRecord(t *testing.T) {
	rec := NewTrainingSession(runningInput()).BuildLogRecord()

	require.Equal(t, "user-1", rec.UserID)
	require.Equal(t, "12345", rec.SessionID)
	require.Equal(t, "Morning Run", rec.ActivityName)
	require.Equal(t, "01:00:00", rec.Duration)
	require.Equal(t, "2021-06-30-17:00:00", rec.TimestampLocal)
	require.True(t, rec.DisplayFrontendNotification)
	require.Equal(t, ActivityRunning, rec.ActivityType)
	require.JSONEq(t, `{"endurance":46,"total":46}`, rec.PointsGained)
	require.JSONEq(t, `{"0":4.57,"10":5.43}`, rec.SpeedKmh)
	require.JSONEq(t, `{"0":10,"10":12}`, rec.ElevationGainMeters)
	require.JSONEq(t, `{"0":140.5,"10":150}`, rec.HeartRate)
	require.JSONEq(t, `{"0":21.5}`, rec.Temperature)
	require.JSONEq(t, `{"0":0,"10":46}`, rec.DistanceMeters)
	require.JSONEq(t, `[0,600]`, rec.LapsData)
}

func TestBuildAggregateUpdate(t *testing.T) {
	upd := NewTrainingSession(runningInput()).BuildAggregateUpdate()

	require.Equal(t, "user-1#RUNNING", upd.Key.UserActivity)
	require.Equal(t, "2021#26", upd.Key.YearWeek)
	require.Equal(t, 4.567, upd.Kilometers)
	require.Equal(t, 1.0, upd.Hours)
}

func TestBuildAggregateUpdatePadsSingleDigitWeeks(t *testing.T) {
	in := runningInput()
	// 2021-01-04, ISO week 1 of 2021.
	in.TimestampLocalSeconds = 1609718400
	upd := NewTrainingSession(in).BuildAggregateUpdate()
	require.Equal(t, "2021#01", upd.Key.YearWeek)
}
