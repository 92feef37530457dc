// Package model defines check-in views, filters and requests.
package model

import "time"

// StudentView is a student joined with its team, as shown on the pages.
type StudentView struct {
	ID          int64      `gorm:"column:id" json:"id"`
	Name        string     `gorm:"column:name" json:"name"`
	University  string     `gorm:"column:university" json:"university"`
	CheckedIn   bool       `gorm:"column:checked_in" json:"checked_in"`
	CheckinTime *time.Time `gorm:"column:checkin_time" json:"checkin_time"`
	TeamID      int        `gorm:"column:team_id" json:"team_id"`
	TeamName    string     `gorm:"column:team_name" json:"team_name"`
	Room        string     `gorm:"column:room" json:"room"`
}

// Status filters the roster by presence.
type Status string

// Roster status filters.
const (
	StatusAll     Status = "all"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// ParseStatus returns the status named by s. Unknown values mean no filter.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusPresent, StatusAbsent:
		return Status(s)
	default:
		return StatusAll
	}
}

// Action is the presence change requested by a form post.
type Action string

// Check-in actions.
const (
	ActionCheckin  Action = "checkin"
	ActionCheckout Action = "checkout"
)

// ParseAction returns checkout only for "checkout"; anything else checks in.
func ParseAction(s string) Action {
	if Action(s) == ActionCheckout {
		return ActionCheckout
	}
	return ActionCheckin
}

// CheckedIn is the presence value the action sets.
func (a Action) CheckedIn() bool {
	return a == ActionCheckin
}

// Scope selects which students an action applies to.
type Scope string

// Action scopes.
const (
	ScopeTeam    Scope = "team"
	ScopeStudent Scope = "student"
)

// SearchFilter narrows the check-in page.
type SearchFilter struct {
	// Query is matched against student name, university, team name and team id.
	Query string
	// Room restricts results to one room when non-empty.
	Room string
}

// ListFilter narrows the roster page.
type ListFilter struct {
	Status Status
	Room   string
}

// CheckinRequest is the check-in form. Team id takes priority over student id.
type CheckinRequest struct {
	StudentID string `form:"student_id"`
	TeamID    string `form:"team_id"`
	Action    string `form:"action"`
	// Query and Room carry the search state back to the page after redirect.
	Query string `form:"q"`
	Room  string `form:"room"`
}

// CheckinResult reports the outcome of one check-in request.
type CheckinResult struct {
	Scope   Scope  `json:"scope"`
	ID      int64  `json:"id"`
	Action  Action `json:"action"`
	Updated int64  `json:"updated"`
}

// SearchResponse is the check-in page.
type SearchResponse struct {
	Query    string        `json:"q"`
	Room     string        `json:"room"`
	Rooms    []string      `json:"rooms"`
	Students []StudentView `json:"students"`
	Flash    string        `json:"flash,omitempty"`
}

// ListResponse is the roster page.
type ListResponse struct {
	Status   Status        `json:"status"`
	Room     string        `json:"room"`
	Rooms    []string      `json:"rooms"`
	Students []StudentView `json:"students"`
	Present  int           `json:"present"`
}
