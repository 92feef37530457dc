// Package repository provides data access for check-in pages and updates.
package repository

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	checkinModel "github.com/festy23/event_checkin/internal/checkin/model"
)

const studentColumns = `students.id AS id,
	students.name AS name,
	COALESCE(students.university, '') AS university,
	students.checked_in AS checked_in,
	students.checkin_time AS checkin_time,
	teams.id AS team_id,
	teams.team_name AS team_name,
	teams.room AS room`

const rosterOrder = "teams.room, teams.id, students.id"

// searchCondition matches an escaped LIKE pattern against the text columns
// and the exact team id. Both sides are folded by the database LOWER so the
// query and the stored value always get the same case mapping.
const searchCondition = `(LOWER(students.name) LIKE LOWER(?) ESCAPE '\'
	OR LOWER(COALESCE(students.university, '')) LIKE LOWER(?) ESCAPE '\'
	OR LOWER(teams.team_name) LIKE LOWER(?) ESCAPE '\'
	OR CAST(teams.id AS TEXT) = ?)`

// Repository defines the interface for check-in data access operations.
type Repository interface {
	// Search returns students matching filter, ordered by room, team and student id.
	Search(ctx context.Context, filter checkinModel.SearchFilter) ([]checkinModel.StudentView, error)

	// List returns students by presence status, in the same order as Search.
	List(ctx context.Context, filter checkinModel.ListFilter) ([]checkinModel.StudentView, error)

	// SetCheckedIn flips presence for the students in scope whose current value
	// differs, stamping at on check-in and clearing the time on check-out.
	// Returns the number of students changed.
	SetCheckedIn(ctx context.Context, scope checkinModel.Scope, id int64, checkedIn bool, at time.Time) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new check-in repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) roster(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("students").
		Select(studentColumns).
		Joins("JOIN teams ON students.team_id = teams.id")
}

// Search returns students matching filter.
func (r *repository) Search(ctx context.Context, filter checkinModel.SearchFilter) ([]checkinModel.StudentView, error) {
	query := r.roster(ctx)

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		query = query.Where(searchCondition, pattern, pattern, pattern, q)
	}
	if filter.Room != "" {
		query = query.Where("teams.room = ?", filter.Room)
	}

	var students []checkinModel.StudentView
	if err := query.Order(rosterOrder).Scan(&students).Error; err != nil {
		return nil, err
	}
	if students == nil {
		return []checkinModel.StudentView{}, nil
	}
	return students, nil
}

// List returns students by presence status.
func (r *repository) List(ctx context.Context, filter checkinModel.ListFilter) ([]checkinModel.StudentView, error) {
	query := r.roster(ctx)

	switch filter.Status {
	case checkinModel.StatusPresent:
		query = query.Where("students.checked_in = ?", true)
	case checkinModel.StatusAbsent:
		query = query.Where("students.checked_in = ?", false)
	}
	if filter.Room != "" {
		query = query.Where("teams.room = ?", filter.Room)
	}

	var students []checkinModel.StudentView
	if err := query.Order(rosterOrder).Scan(&students).Error; err != nil {
		return nil, err
	}
	if students == nil {
		return []checkinModel.StudentView{}, nil
	}
	return students, nil
}

// SetCheckedIn flips presence for the students in scope.
func (r *repository) SetCheckedIn(
	ctx context.Context,
	scope checkinModel.Scope,
	id int64,
	checkedIn bool,
	at time.Time,
) (int64, error) {
	// Only rows holding the opposite value are touched, so repeats change nothing.
	query := r.db.WithContext(ctx).Table("students").Where("checked_in = ?", !checkedIn)

	switch scope {
	case checkinModel.ScopeTeam:
		query = query.Where("team_id = ?", id)
	case checkinModel.ScopeStudent:
		query = query.Where("id = ?", id)
	default:
		return 0, checkinModel.ErrInvalidScope
	}

	updates := map[string]interface{}{
		"checked_in":   checkedIn,
		"checkin_time": nil,
	}
	if checkedIn {
		updates["checkin_time"] = at
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}

	r.logger.Debugw("presence updated",
		"scope", scope, "id", id, "checked_in", checkedIn, "rows", result.RowsAffected)
	return result.RowsAffected, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
