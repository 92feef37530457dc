// Package repository provides data access for roster imports.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	rosterModel "github.com/festy23/event_checkin/internal/roster/model"
)

// Repository defines the roster write operations used by the importer.
type Repository interface {
	// InsertTeamIfAbsent inserts team unless its id exists. Reports whether a row was written.
	InsertTeamIfAbsent(ctx context.Context, team *rosterModel.Team) (bool, error)

	// InsertStudentIfAbsent inserts student unless (name, team_id) exists.
	// Reports whether a row was written.
	InsertStudentIfAbsent(ctx context.Context, student *rosterModel.Student) (bool, error)

	// CountStudents returns the number of students in the store.
	CountStudents(ctx context.Context) (int64, error)

	// CountTeams returns the number of teams in the store.
	CountTeams(ctx context.Context) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new roster repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// InsertTeamIfAbsent inserts team unless its id exists.
func (r *repository) InsertTeamIfAbsent(ctx context.Context, team *rosterModel.Team) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(team)
	if result.Error != nil {
		return false, result.Error
	}

	inserted := result.RowsAffected > 0
	if inserted {
		r.logger.Debugw("team inserted", "team_id", team.ID, "room", team.Room)
	}
	return inserted, nil
}

// InsertStudentIfAbsent inserts student unless (name, team_id) exists.
func (r *repository) InsertStudentIfAbsent(ctx context.Context, student *rosterModel.Student) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "team_id"}},
			DoNothing: true,
		}).
		Omit("checked_in", "checkin_time").
		Create(student)
	if result.Error != nil {
		return false, result.Error
	}

	inserted := result.RowsAffected > 0
	if inserted {
		r.logger.Debugw("student inserted", "student_id", student.ID, "team_id", student.TeamID)
	}
	return inserted, nil
}

// CountStudents returns the number of students in the store.
func (r *repository) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&rosterModel.Student{}).Count(&count).Error
	return count, err
}

// CountTeams returns the number of teams in the store.
func (r *repository) CountTeams(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&rosterModel.Team{}).Count(&count).Error
	return count, err
}
