// Package model defines roster entities and import results.
package model

import (
	"math"
	"time"
)

// MaxID is the largest team or student id the INTEGER id columns can hold.
const MaxID = math.MaxInt32

// Team is a group of students assigned to one room.
// Matches the teams table schema.
type Team struct {
	ID       int    `gorm:"primaryKey;column:id;autoIncrement:false" json:"id"`
	TeamName string `gorm:"column:team_name;not null" json:"team_name"`
	Room     string `gorm:"column:room;not null;index:idx_teams_room" json:"room"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// Student is a single attendee belonging to a team.
// Matches the students table schema.
type Student struct {
	ID          int64      `gorm:"primaryKey;column:id" json:"id"`
	Name        string     `gorm:"column:name;not null;uniqueIndex:uq_students_name_team" json:"name"`
	TeamID      int        `gorm:"column:team_id;not null;uniqueIndex:uq_students_name_team" json:"team_id"`
	University  *string    `gorm:"column:university" json:"university,omitempty"`
	CheckedIn   bool       `gorm:"column:checked_in;not null;default:false" json:"checked_in"`
	CheckinTime *time.Time `gorm:"column:checkin_time" json:"checkin_time,omitempty"`
}

// TableName specifies the table name for GORM.
func (Student) TableName() string {
	return "students"
}

// Entry is one name/university pair from a roster row.
type Entry struct {
	Name       string
	University string
}

// Row is a normalized roster line: a team and up to two members.
type Row struct {
	TeamID   int
	TeamName string
	First    Entry
	Second   Entry
}

// Members returns the row's entries that carry a name.
func (r Row) Members() []Entry {
	members := make([]Entry, 0, 2)
	for _, e := range []Entry{r.First, r.Second} {
		if e.Name != "" {
			members = append(members, e)
		}
	}
	return members
}
