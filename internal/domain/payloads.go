package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// NotificationSource identifies this pipeline on the event bus.
const NotificationSource = "com.blaze.activities"

// NotificationEventType is attached to every published notification.
const NotificationEventType = "activity_processed"

// NotificationDetail is the payload carried by the activity_processed event.
type NotificationDetail struct {
	UserID           string       `json:"user_id"`
	TimestampLocal   int64        `json:"timestamp_local"`
	SessionID        int64        `json:"session_id"`
	ActivityType     ActivityType `json:"activity_type"`
	DistanceInMeters float64      `json:"distance_in_meters"`
	PointsGained     string       `json:"points_gained"`
}

// NotificationEvent is the fan-out message announcing a processed session.
type NotificationEvent struct {
	Source    string             `json:"source"`
	EventType string             `json:"event_type"`
	Detail    NotificationDetail `json:"detail"`
}

// BuildNotification assembles the activity_processed event for this session.
// The detail carries the raw local epoch, not the formatted rendering.
func (s TrainingSession) BuildNotification() NotificationEvent {
	return NotificationEvent{
		Source:    NotificationSource,
		EventType: NotificationEventType,
		Detail: NotificationDetail{
			UserID:           s.UserID,
			TimestampLocal:   s.TimestampLocalSeconds,
			SessionID:        s.SessionID,
			ActivityType:     s.ActivityType,
			DistanceInMeters: s.DistanceMetersTotal,
			PointsGained:     marshalText(s.PointsGained),
		},
	}
}

// LogRecord is the flat row appended to the trainings log. The destination has
// no nested column types, so every time series is serialized to JSON text and
// the session id is rendered as text.
type LogRecord struct {
	UserID                      string
	SessionID                   string
	ActivityName                string
	Duration                    string
	TimestampLocal              string
	PointsGained                string
	DisplayFrontendNotification bool
	ActivityType                ActivityType

	AverageHeartRateBpm      float64
	AverageSpeedKmh          float64
	AveragePaceMinPerKm      float64
	ActiveCalories           float64
	DistanceMetersTotal      float64
	MaxHeartRateBpm          float64
	MaxPaceMinPerKm          float64
	MaxSpeedKmh              float64
	ElevationGainMetersTotal float64

	ElevationGainMeters string
	SpeedKmh            string
	HeartRate           string
	Temperature         string
	DistanceMeters      string
	LapsData            string
}

// BuildLogRecord flattens the session into one trainings-log row. The record
// always requests a user-facing notification.
func (s TrainingSession) BuildLogRecord() LogRecord {
	return LogRecord{
		UserID:                      s.UserID,
		SessionID:                   strconv.FormatInt(s.SessionID, 10),
		ActivityName:                s.ActivityName,
		Duration:                    s.Duration,
		TimestampLocal:              s.TimestampLocal,
		PointsGained:                marshalText(s.PointsGained),
		DisplayFrontendNotification: true,
		ActivityType:                s.ActivityType,

		AverageHeartRateBpm:      s.AverageHeartRateBpm,
		AverageSpeedKmh:          s.AverageSpeedKmh,
		AveragePaceMinPerKm:      s.AveragePaceMinPerKm,
		ActiveCalories:           s.ActiveCalories,
		DistanceMetersTotal:      s.DistanceMetersTotal,
		MaxHeartRateBpm:          s.MaxHeartRateBpm,
		MaxPaceMinPerKm:          s.MaxPaceMinPerKm,
		MaxSpeedKmh:              s.MaxSpeedKmh,
		ElevationGainMetersTotal: s.ElevationGainMetersTotal,

		ElevationGainMeters: marshalText(s.ElevationGainMeters),
		SpeedKmh:            marshalText(s.SpeedKmh),
		HeartRate:           marshalText(s.HeartRate),
		Temperature:         marshalText(s.Temperature),
		DistanceMeters:      marshalText(s.DistanceMeters),
		LapsData:            marshalText(s.Laps),
	}
}

// BucketKey identifies one weekly aggregate accumulator.
type BucketKey struct {
	// UserActivity is the partition component, user_id#activity_type.
	UserActivity string
	// YearWeek is the range component, year#zero-padded ISO week. The week is
	// padded to two digits so keys compare lexically in chronological order.
	YearWeek string
}

// AggregateUpdate is an additive delta against a weekly bucket. The deltas
// accumulate on top of whatever totals already exist at the key.
type AggregateUpdate struct {
	Key        BucketKey
	Kilometers float64
	Hours      float64
}

// BuildAggregateUpdate derives the weekly bucket for this session's local
// timestamp and the distance/duration deltas to merge into it.
func (s TrainingSession) BuildAggregateUpdate() AggregateUpdate {
	year, week := ISOWeek(s.TimestampLocalSeconds)
	return AggregateUpdate{
		Key: BucketKey{
			UserActivity: fmt.Sprintf("%s#%s", s.UserID, s.ActivityType),
			YearWeek:     fmt.Sprintf("%d#%02d", year, week),
		},
		Kilometers: Round(s.DistanceMetersTotal/1000, 2),
		Hours:      Round(float64(s.DurationSeconds)/3600, 2),
	}
}

func marshalText(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		// Only map/slice/struct values of plain numeric types reach here.
		return "{}"
	}
	return string(out)
}
