// Package service provides business logic for check-in pages and updates.
package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	checkinModel "github.com/festy23/event_checkin/internal/checkin/model"
	"github.com/festy23/event_checkin/internal/checkin/repository"
	appConfig "github.com/festy23/event_checkin/internal/config"
	"github.com/festy23/event_checkin/internal/metrics"
	rosterModel "github.com/festy23/event_checkin/internal/roster/model"
)

// Service defines the interface for check-in operations.
type Service interface {
	// Search builds the check-in page. An unknown room means no room filter.
	Search(ctx context.Context, query, room string) (*checkinModel.SearchResponse, error)

	// List builds the roster page. Unknown status or room values mean no filter.
	List(ctx context.Context, status, room string) (*checkinModel.ListResponse, error)

	// Apply checks a team or a single student in or out. A team id wins over a
	// student id; non-numeric ids are ignored and yield ErrNoTarget.
	Apply(ctx context.Context, req checkinModel.CheckinRequest) (*checkinModel.CheckinResult, error)
}

type service struct {
	repo    repository.Repository
	roster  appConfig.RosterConfig
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// Option configures the service.
type Option func(*service)

// WithClock overrides the source of check-in times.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// New creates a new check-in service instance.
func New(
	repo repository.Repository,
	roster appConfig.RosterConfig,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
	opts ...Option,
) Service {
	s := &service{
		repo:    repo,
		roster:  roster,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search builds the check-in page.
func (s *service) Search(ctx context.Context, query, room string) (*checkinModel.SearchResponse, error) {
	query = strings.TrimSpace(query)
	room = s.validRoom(room)

	students, err := s.repo.Search(ctx, checkinModel.SearchFilter{Query: query, Room: room})
	if err != nil {
		return nil, err
	}

	return &checkinModel.SearchResponse{
		Query:    query,
		Room:     room,
		Rooms:    s.roster.RoomNames(),
		Students: students,
	}, nil
}

// List builds the roster page.
func (s *service) List(ctx context.Context, status, room string) (*checkinModel.ListResponse, error) {
	filter := checkinModel.ListFilter{
		Status: checkinModel.ParseStatus(strings.TrimSpace(status)),
		Room:   s.validRoom(room),
	}

	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	present := 0
	for _, student := range students {
		if student.CheckedIn {
			present++
		}
	}

	return &checkinModel.ListResponse{
		Status:   filter.Status,
		Room:     filter.Room,
		Rooms:    s.roster.RoomNames(),
		Students: students,
		Present:  present,
	}, nil
}

// Apply checks a team or a single student in or out.
func (s *service) Apply(ctx context.Context, req checkinModel.CheckinRequest) (*checkinModel.CheckinResult, error) {
	var (
		scope checkinModel.Scope
		id    int64
	)
	if teamID, ok := parseID(req.TeamID); ok {
		scope, id = checkinModel.ScopeTeam, teamID
	} else if studentID, ok := parseID(req.StudentID); ok {
		scope, id = checkinModel.ScopeStudent, studentID
	} else {
		return nil, checkinModel.ErrNoTarget
	}

	action := checkinModel.ParseAction(req.Action)
	updated, err := s.repo.SetCheckedIn(ctx, scope, id, action.CheckedIn(), s.now())
	if err != nil {
		return nil, err
	}

	s.metrics.CheckinUpdated(string(action), string(scope), updated)
	s.logger.Infow("presence changed",
		"action", action, "scope", scope, "id", id, "updated", updated)

	return &checkinModel.CheckinResult{
		Scope:   scope,
		ID:      id,
		Action:  action,
		Updated: updated,
	}, nil
}

// validRoom returns room when it is a configured room, otherwise "".
func (s *service) validRoom(room string) string {
	room = strings.TrimSpace(room)
	if s.roster.HasRoom(room) {
		return room
	}
	return ""
}

// parseID accepts a non-empty run of decimal digits from any script, so
// Arabic-Indic "٥" reads as 5. Whitespace, signs and ids above
// rosterModel.MaxID are rejected.
func parseID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	var id int64
	for _, r := range raw {
		d, ok := digitValue(r)
		if !ok {
			return 0, false
		}
		id = id*10 + int64(d)
		if id > rosterModel.MaxID {
			return 0, false
		}
	}
	return id, true
}

// digitValue returns the value of a Unicode decimal digit. Decimal digits are
// encoded as contiguous runs of ten starting at zero, and each range of the Nd
// table is made of whole runs.
func digitValue(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	if !unicode.IsDigit(r) {
		return 0, false
	}
	for _, rng := range unicode.Nd.R16 {
		if lo, hi := rune(rng.Lo), rune(rng.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10, true
		}
	}
	for _, rng := range unicode.Nd.R32 {
		if lo, hi := rune(rng.Lo), rune(rng.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10, true
		}
	}
	return 0, false
}
