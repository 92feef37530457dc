// Package model provides data transfer objects for statistics module.
package model

// RoomStatistics represents attendance for one room.
type RoomStatistics struct {
	Room            string `gorm:"column:room" json:"room"`
	TotalStudents   int64  `gorm:"column:total_students" json:"total_students"`
	PresentStudents int64  `gorm:"column:present_students" json:"present_students"`
}

// Totals represents attendance across every room.
type Totals struct {
	TotalStudents  int64 `json:"total_students"`
	TotalCheckedIn int64 `json:"total_checked_in"`
}

// Sum adds up per-room counts.
func Sum(rooms []RoomStatistics) Totals {
	var totals Totals
	for _, room := range rooms {
		totals.TotalStudents += room.TotalStudents
		totals.TotalCheckedIn += room.PresentStudents
	}
	return totals
}

// StatsResponse represents the stats page.
type StatsResponse struct {
	TotalStudents  int64            `json:"total_students"`
	TotalCheckedIn int64            `json:"total_checked_in"`
	PerRoom        []RoomStatistics `json:"per_room"`
}
