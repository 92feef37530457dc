package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/festy23/event_checkin/internal/database/dbtest"
	rosterModel "github.com/festy23/event_checkin/internal/roster/model"
)

func ptr(s string) *string { return &s }

func TestRepository_InsertTeamIfAbsent(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)
	repo := New(db, zaptest.NewLogger(t).Sugar())

	inserted, err := repo.InsertTeamIfAbsent(ctx, &rosterModel.Team{ID: 5, TeamName: "Falcons", Room: "Neural"})
	require.NoError(t, err)
	assert.True(t, inserted)

	t.Run("existing id is never overwritten", func(t *testing.T) {
		inserted, err := repo.InsertTeamIfAbsent(ctx, &rosterModel.Team{ID: 5, TeamName: "Renamed", Room: "Qubit"})
		require.NoError(t, err)
		assert.False(t, inserted)

		var team rosterModel.Team
		require.NoError(t, db.First(&team, 5).Error)
		assert.Equal(t, "Falcons", team.TeamName)
		assert.Equal(t, "Neural", team.Room)
	})

	count, err := repo.CountTeams(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_InsertStudentIfAbsent(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)
	repo := New(db, zaptest.NewLogger(t).Sugar())

	for _, id := range []int{5, 6} {
		_, err := repo.InsertTeamIfAbsent(ctx, &rosterModel.Team{ID: id, TeamName: "T", Room: "Neural"})
		require.NoError(t, err)
	}

	amr := &rosterModel.Student{Name: "Amr", TeamID: 5, University: ptr("Cairo")}
	inserted, err := repo.InsertStudentIfAbsent(ctx, amr)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotZero(t, amr.ID)

	t.Run("same name and team is ignored", func(t *testing.T) {
		inserted, err := repo.InsertStudentIfAbsent(ctx, &rosterModel.Student{Name: "Amr", TeamID: 5, University: ptr("Other")})
		require.NoError(t, err)
		assert.False(t, inserted)

		var stored rosterModel.Student
		require.NoError(t, db.Where("name = ? AND team_id = ?", "Amr", 5).First(&stored).Error)
		require.NotNil(t, stored.University)
		assert.Equal(t, "Cairo", *stored.University)
	})

	t.Run("same name on another team is a different student", func(t *testing.T) {
		inserted, err := repo.InsertStudentIfAbsent(ctx, &rosterModel.Student{Name: "Amr", TeamID: 6})
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("new students start checked out", func(t *testing.T) {
		var stored rosterModel.Student
		require.NoError(t, db.Where("name = ? AND team_id = ?", "Amr", 6).First(&stored).Error)
		assert.False(t, stored.CheckedIn)
		assert.Nil(t, stored.CheckinTime)
		assert.Nil(t, stored.University)
	})

	t.Run("ids are monotonic", func(t *testing.T) {
		mona := &rosterModel.Student{Name: "Mona", TeamID: 5}
		_, err := repo.InsertStudentIfAbsent(ctx, mona)
		require.NoError(t, err)
		assert.Greater(t, mona.ID, amr.ID)
	})

	t.Run("unknown team is rejected", func(t *testing.T) {
		_, err := repo.InsertStudentIfAbsent(ctx, &rosterModel.Student{Name: "Ghost", TeamID: 404})
		assert.Error(t, err)
	})

	count, err := repo.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRepository_CountEmpty(t *testing.T) {
	ctx := context.Background()
	repo := New(dbtest.NewSQLite(t), zaptest.NewLogger(t).Sugar())

	students, err := repo.CountStudents(ctx)
	require.NoError(t, err)
	assert.Zero(t, students)

	teams, err := repo.CountTeams(ctx)
	require.NoError(t, err)
	assert.Zero(t, teams)
}
