// Package postgres provides the Postgres-backed sinks for the ingestion
// pipeline: the append-only trainings log and the weekly aggregate totals.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/ingest/internal/domain"
	"example.com/ingest/internal/observability"
)

// Repository writes log rows, merges weekly aggregates, and attaches
// subjective feedback to existing log rows.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InsertLogRecord appends one session row to trainings_log.
func (r *Repository) InsertLogRecord(ctx context.Context, rec domain.LogRecord) error {
	const stmt = `INSERT INTO trainings_log (
            user_id, session_id, activity_name, duration, timestamp_local,
            points_gained, display_frontend_notification, activity_type,
            average_heart_rate_in_bpm, average_speed_km_h, average_pace_min_per_km,
            active_calories, distance_meters_total, max_heart_rate_in_bpm,
            max_pace_min_per_km, max_speed_km_h, elevation_gain_meters_total,
            elevation_gain_meters, speed_km_h, heart_rate, temperature,
            distance_meters, laps_data)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`

	_, err := r.pool.Exec(ctx, stmt,
		rec.UserID,
		rec.SessionID,
		rec.ActivityName,
		rec.Duration,
		rec.TimestampLocal,
		rec.PointsGained,
		rec.DisplayFrontendNotification,
		rec.ActivityType,
		rec.AverageHeartRateBpm,
		rec.AverageSpeedKmh,
		rec.AveragePaceMinPerKm,
		rec.ActiveCalories,
		rec.DistanceMetersTotal,
		rec.MaxHeartRateBpm,
		rec.MaxPaceMinPerKm,
		rec.MaxSpeedKmh,
		rec.ElevationGainMetersTotal,
		rec.ElevationGainMeters,
		rec.SpeedKmh,
		rec.HeartRate,
		rec.Temperature,
		rec.DistanceMeters,
		rec.LapsData,
	)
	if err != nil {
		return err
	}
	observability.RecordLogWrite(time.Now().UTC())
	return nil
}

// ApplyAggregateUpdate merges additive deltas into the weekly bucket. The
// update accumulates on top of whatever totals already exist at the key; it
// never overwrites.
func (r *Repository) ApplyAggregateUpdate(ctx context.Context, upd domain.AggregateUpdate) error {
	const stmt = `INSERT INTO trainings_aggregates (user_activity, year_week, km, hours)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (user_activity, year_week)
        DO UPDATE SET km = trainings_aggregates.km + EXCLUDED.km,
                      hours = trainings_aggregates.hours + EXCLUDED.hours`

	_, err := r.pool.Exec(ctx, stmt, upd.Key.UserActivity, upd.Key.YearWeek, upd.Kilometers, upd.Hours)
	if err != nil {
		return err
	}
	observability.RecordAggregateMerge(time.Now().UTC())
	return nil
}

// SubjectiveParams are the athlete-reported scores attached to an existing
// session row. Nil scores are stored as the unreported sentinel.
type SubjectiveParams struct {
	UserID                   string
	SessionID                string
	PerceivedExertion        *float64
	PerceivedRecovery        *float64
	PerceivedTrainingSuccess *float64
}

// unreportedScore marks a score the athlete did not provide, so downstream
// consumers can tell "not reported" apart from a zero score.
const unreportedScore = -0.1

// UpdateSubjectiveParams sets the perceived_* columns on the session's log
// row.
func (r *Repository) UpdateSubjectiveParams(ctx context.Context, p SubjectiveParams) error {
	const stmt = `UPDATE trainings_log
        SET perceived_exertion = $3,
            perceived_recovery = $4,
            perceived_training_success = $5
        WHERE user_id = $1 AND session_id = $2`

	_, err := r.pool.Exec(ctx, stmt,
		p.UserID,
		p.SessionID,
		scoreOrUnreported(p.PerceivedExertion),
		scoreOrUnreported(p.PerceivedRecovery),
		scoreOrUnreported(p.PerceivedTrainingSuccess),
	)
	return err
}

func scoreOrUnreported(score *float64) float64 {
	if score == nil {
		return unreportedScore
	}
	return *score
}
