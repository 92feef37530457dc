package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appConfig "github.com/festy23/event_checkin/internal/config"
	dbConfig "github.com/festy23/event_checkin/internal/database/config"
	"github.com/festy23/event_checkin/internal/database/database"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "checkin.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", dbPath)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MIGRATIONS_PATH", "")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "students.csv"),
		[]byte("team_id,team_name,room,student_name\n5,Falcons,Qubit,Amr\n5,Falcons,Qubit,Mona\n"), 0o600))
	roster := appConfig.RosterConfig{Rooms: appConfig.DefaultRooms(), Dir: dir, CSVFile: "students.csv"}
	ctx := context.Background()

	require.NoError(t, run(ctx, roster, false, zap.NewNop().Sugar()))
	require.NoError(t, run(ctx, roster, true, zap.NewNop().Sugar()))

	db, err := database.NewWithConfig(ctx, dbConfig.Config{Driver: dbConfig.DriverSQLite, SQLitePath: dbPath})
	require.NoError(t, err)
	defer func() { _ = database.Close(db) }()

	var students int64
	require.NoError(t, db.Table("students").Count(&students).Error)
	assert.Equal(t, int64(2), students)
}

func TestRun_BadDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	err := run(context.Background(), appConfig.RosterConfig{Rooms: appConfig.DefaultRooms()}, false, zap.NewNop().Sugar())
	assert.Error(t, err)
}
