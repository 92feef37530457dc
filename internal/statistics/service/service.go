// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/event_checkin/internal/statistics/model"
	"github.com/festy23/event_checkin/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetStats returns overall and per-room attendance.
	GetStats(ctx context.Context) (*model.StatsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetStats returns overall and per-room attendance.
func (s *service) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	s.logger.Debugw("GetStats called")

	rooms, err := s.repo.GetRoomStatistics(ctx)
	if err != nil {
		s.logger.Errorw("GetStats rooms failed", "error", err)
		return nil, err
	}
	if rooms == nil {
		rooms = []model.RoomStatistics{}
	}
	// Totals come from the same rows so they always equal the per-room sums.
	totals := model.Sum(rooms)

	s.logger.Debugw("GetStats completed",
		"total_students", totals.TotalStudents, "total_checked_in", totals.TotalCheckedIn)
	return &model.StatsResponse{
		TotalStudents:  totals.TotalStudents,
		TotalCheckedIn: totals.TotalCheckedIn,
		PerRoom:        rooms,
	}, nil
}
