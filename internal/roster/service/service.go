// Package service runs idempotent roster imports.
package service

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	appConfig "github.com/festy23/event_checkin/internal/config"
	"github.com/festy23/event_checkin/internal/metrics"
	rosterModel "github.com/festy23/event_checkin/internal/roster/model"
	"github.com/festy23/event_checkin/internal/roster/parser"
	"github.com/festy23/event_checkin/internal/roster/reader"
	"github.com/festy23/event_checkin/internal/roster/repository"
	"github.com/festy23/event_checkin/pkg/retry"
)

// Service defines roster import operations.
type Service interface {
	// Import loads the roster from the configured sources. Existing teams and
	// students are never modified, so repeated imports are safe.
	Import(ctx context.Context) (*rosterModel.ImportSummary, error)

	// ImportIfEmpty runs Import only when the store holds no students.
	ImportIfEmpty(ctx context.Context) (*rosterModel.ImportSummary, error)
}

type service struct {
	repo    repository.Repository
	db      *gorm.DB
	cfg     appConfig.RosterConfig
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
}

// New creates a new roster import service instance.
func New(
	repo repository.Repository,
	db *gorm.DB,
	cfg appConfig.RosterConfig,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:    repo,
		db:      db,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

// teamBatch is one team with the students to insert under it.
type teamBatch struct {
	team     rosterModel.Team
	students []rosterModel.Student
}

// ImportIfEmpty runs Import only when the store holds no students.
func (s *service) ImportIfEmpty(ctx context.Context) (*rosterModel.ImportSummary, error) {
	count, err := s.repo.CountStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if count > 0 {
		s.logger.Infow("roster import skipped, store is not empty", "students", count)
		return &rosterModel.ImportSummary{Source: rosterModel.SourceNone, Skipped: true}, nil
	}
	return s.Import(ctx)
}

// Import loads the roster from room spreadsheets, or the CSV when none exist.
func (s *service) Import(ctx context.Context) (*rosterModel.ImportSummary, error) {
	if len(s.cfg.Rooms) == 0 {
		return nil, rosterModel.ErrNoRooms
	}

	summary := &rosterModel.ImportSummary{Source: rosterModel.SourceNone, Files: []string{}}

	batches, err := s.readSpreadsheets(summary)
	if err != nil {
		return nil, err
	}
	if summary.Source == rosterModel.SourceNone {
		batches, err = s.readCSV(summary)
		if err != nil {
			return nil, err
		}
	}

	if summary.Source == rosterModel.SourceNone {
		s.logger.Infow("no roster source found, store keeps schema only",
			"dir", s.cfg.Dir, "csv", s.cfg.CSVFile)
		return summary, nil
	}

	if err := s.write(ctx, batches, summary); err != nil {
		return nil, err
	}

	s.metrics.ImportCompleted(summary.Source, summary.RowsRead, summary.RowsSkipped,
		summary.TeamsInserted, summary.StudentsInserted)
	s.logger.Infow("roster import completed",
		"source", summary.Source,
		"files", summary.Files,
		"rows_read", summary.RowsRead,
		"rows_skipped", summary.RowsSkipped,
		"teams_inserted", summary.TeamsInserted,
		"students_inserted", summary.StudentsInserted,
	)
	return summary, nil
}

// readSpreadsheets parses every sheet of every existing room file. Source is
// left as none when no room file exists.
func (s *service) readSpreadsheets(summary *rosterModel.ImportSummary) ([]teamBatch, error) {
	var batches []teamBatch
	for _, room := range s.cfg.Rooms {
		path := s.cfg.ResolvePath(room.File)
		if !fileExists(path) {
			continue
		}

		sheets, err := reader.ReadWorkbook(path)
		if err != nil {
			return nil, fmt.Errorf("failed to import room %s: %w", room.Name, err)
		}
		summary.Source = rosterModel.SourceSpreadsheets
		summary.Files = append(summary.Files, path)

		for _, sheet := range sheets {
			for _, cells := range sheet.Rows {
				summary.RowsRead++
				row, ok := parser.ParseRow(cells)
				if !ok {
					summary.RowsSkipped++
					continue
				}
				batches = append(batches, batchFromRow(row, room.Name))
			}
		}
	}
	return batches, nil
}

// readCSV parses the fallback CSV when it exists.
func (s *service) readCSV(summary *rosterModel.ImportSummary) ([]teamBatch, error) {
	path := s.cfg.ResolvePath(s.cfg.CSVFile)
	if !fileExists(path) {
		return nil, nil
	}

	records, err := reader.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	summary.Source = rosterModel.SourceCSV
	summary.Files = append(summary.Files, path)

	batches := make([]teamBatch, 0, len(records))
	for _, rec := range records {
		summary.RowsRead++
		teamID, ok := parser.ParseTeamID(rec.TeamID)
		if !ok {
			summary.RowsSkipped++
			continue
		}

		room := rec.Room
		if !s.cfg.HasRoom(room) {
			room = s.cfg.FallbackRoom()
		}
		teamName := rec.TeamName
		if teamName == "" {
			teamName = parser.PlaceholderTeamName(teamID)
		}

		batch := teamBatch{team: rosterModel.Team{ID: teamID, TeamName: teamName, Room: room}}
		if rec.StudentName != "" {
			batch.students = append(batch.students, newStudent(teamID, rosterModel.Entry{
				Name:       rec.StudentName,
				University: rec.University,
			}))
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// write inserts batches in one transaction, retried when SQLite reports lock contention.
func (s *service) write(ctx context.Context, batches []teamBatch, summary *rosterModel.ImportSummary) error {
	return retry.Do(ctx, retry.SQLiteConfig(), func() error {
		teams, students := 0, 0
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txRepo := repository.New(tx, s.logger)

			for i := range batches {
				team := batches[i].team
				inserted, err := txRepo.InsertTeamIfAbsent(ctx, &team)
				if err != nil {
					return fmt.Errorf("failed to insert team %d: %w", team.ID, err)
				}
				if inserted {
					teams++
				}

				for j := range batches[i].students {
					student := batches[i].students[j]
					inserted, err := txRepo.InsertStudentIfAbsent(ctx, &student)
					if err != nil {
						return fmt.Errorf("failed to insert student %q of team %d: %w", student.Name, team.ID, err)
					}
					if inserted {
						students++
					}
				}
			}
			return nil
		})
		if err != nil {
			s.logger.Warnw("roster import transaction failed", "error", err)
			return err
		}

		summary.TeamsInserted = teams
		summary.StudentsInserted = students
		return nil
	})
}

func batchFromRow(row rosterModel.Row, room string) teamBatch {
	batch := teamBatch{team: rosterModel.Team{ID: row.TeamID, TeamName: row.TeamName, Room: room}}
	for _, member := range row.Members() {
		batch.students = append(batch.students, newStudent(row.TeamID, member))
	}
	return batch
}

// newStudent builds a student, storing a blank university as NULL.
func newStudent(teamID int, entry rosterModel.Entry) rosterModel.Student {
	student := rosterModel.Student{Name: entry.Name, TeamID: teamID}
	if entry.University != "" {
		university := entry.University
		student.University = &university
	}
	return student
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
