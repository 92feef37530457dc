// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/event_checkin/internal/statistics/model"
)

// presentSum counts checked-in rows; SUM over no rows is NULL.
const presentSum = "COALESCE(SUM(CASE WHEN students.checked_in THEN 1 ELSE 0 END), 0)"

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetRoomStatistics returns per-room counts ordered by room.
	GetRoomStatistics(ctx context.Context) ([]model.RoomStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetRoomStatistics returns per-room counts ordered by room. Rooms without
// students are not listed. Every student belongs to a team, so the rows add
// up to the whole roster.
func (r *repository) GetRoomStatistics(ctx context.Context) ([]model.RoomStatistics, error) {
	r.logger.Debugw("GetRoomStatistics called")

	var stats []model.RoomStatistics
	err := r.db.WithContext(ctx).
		Table("students").
		Select("teams.room AS room, COUNT(students.id) AS total_students, " + presentSum + " AS present_students").
		Joins("JOIN teams ON teams.id = students.team_id").
		Group("teams.room").
		Order("teams.room ASC").
		Scan(&stats).Error
	if err != nil {
		r.logger.Errorw("GetRoomStatistics database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.RoomStatistics{}
	}

	r.logger.Debugw("GetRoomStatistics completed", "rooms", len(stats))
	return stats, nil
}
