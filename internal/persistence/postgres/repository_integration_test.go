//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/ingest/internal/domain"
)

func TestRepositoryLogAndAggregates(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("trainings"),
		postgrescontainer.WithUsername("platform"),
		postgrescontainer.WithPassword("platform"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))

	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	repo := NewRepository(pool)

	rec := domain.LogRecord{
		UserID:                      "user-1",
		SessionID:                   "12345",
		ActivityName:                "Morning run",
		Duration:                    "01:00:00",
		TimestampLocal:              "2021-06-30-17:00:00",
		PointsGained:                `{"endurance":46,"total":46}`,
		DisplayFrontendNotification: true,
		ActivityType:                domain.ActivityRunning,
		AverageSpeedKmh:             4.56,
		DistanceMetersTotal:         4567,
		ElevationGainMeters:         `{"0":0}`,
		SpeedKmh:                    `{"0":3.6}`,
		HeartRate:                   `{"0":120}`,
		Temperature:                 `{"0":21}`,
		DistanceMeters:              `{"0":0}`,
		LapsData:                    `[0,600]`,
	}
	require.NoError(t, repo.InsertLogRecord(ctx, rec))

	var activityName, lapsData string
	var display bool
	err = pool.QueryRow(ctx,
		`SELECT activity_name, laps_data, display_frontend_notification
         FROM trainings_log WHERE user_id = $1 AND session_id = $2`,
		"user-1", "12345",
	).Scan(&activityName, &lapsData, &display)
	require.NoError(t, err)
	require.Equal(t, "Morning run", activityName)
	require.Equal(t, `[0,600]`, lapsData)
	require.True(t, display)

	upd := domain.AggregateUpdate{
		Key: domain.BucketKey{
			UserActivity: "user-1#RUNNING",
			YearWeek:     "2021#26",
		},
		Kilometers: 4.567,
		Hours:      1.0,
	}
	require.NoError(t, repo.ApplyAggregateUpdate(ctx, upd))
	require.NoError(t, repo.ApplyAggregateUpdate(ctx, upd))

	var km, hours float64
	err = pool.QueryRow(ctx,
		`SELECT km, hours FROM trainings_aggregates
         WHERE user_activity = $1 AND year_week = $2`,
		"user-1#RUNNING", "2021#26",
	).Scan(&km, &hours)
	require.NoError(t, err)
	require.InDelta(t, 9.134, km, 1e-9)
	require.InDelta(t, 2.0, hours, 1e-9)

	exertion := 7.0
	require.NoError(t, repo.UpdateSubjectiveParams(ctx, SubjectiveParams{
		UserID:            "user-1",
		SessionID:         "12345",
		PerceivedExertion: &exertion,
	}))

	var perceivedExertion, perceivedRecovery float64
	err = pool.QueryRow(ctx,
		`SELECT perceived_exertion, perceived_recovery
         FROM trainings_log WHERE user_id = $1 AND session_id = $2`,
		"user-1", "12345",
	).Scan(&perceivedExertion, &perceivedRecovery)
	require.NoError(t, err)
	require.Equal(t, 7.0, perceivedExertion)
	require.Equal(t, -0.1, perceivedRecovery)
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	files := []string{
		"../../../db/postgres/migrations/0001_init.up.sql",
	}

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	for _, rel := range files {
		path := resolvePath(t, rel)
		contents, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		_, execErr := pool.Exec(ctx, string(contents))
		require.NoError(t, execErr)
	}
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
