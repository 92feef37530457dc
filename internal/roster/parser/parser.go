// Package parser turns raw roster cells into normalized rows.
//
// A roster row is positional: team id, first name, first university,
// second name, second university and an optional team name.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/festy23/event_checkin/internal/roster/model"
)

// Column positions within a roster row.
const (
	colTeamID = iota
	colFirstName
	colFirstUniversity
	colSecondName
	colSecondUniversity
	colTeamName
)

// CellValue returns the trimmed cell at idx, or "" when the row is too short.
func CellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParseTeamID parses a team id in 1..model.MaxID. Integral decimal values such
// as "7.0", which spreadsheets produce for numeric cells, are accepted.
func ParseTeamID(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	if id, err := strconv.Atoi(raw); err == nil {
		return id, id > 0 && id <= model.MaxID
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f <= 0 || f > model.MaxID {
		return 0, false
	}
	return int(f), true
}

// PlaceholderTeamName is the name given to teams that arrive without one.
func PlaceholderTeamName(teamID int) string {
	return fmt.Sprintf("فريق %d", teamID)
}

// ParseRow converts cells into a Row. The second return value is false when
// the row has no usable team id and must be skipped.
func ParseRow(cells []string) (model.Row, bool) {
	teamID, ok := ParseTeamID(CellValue(cells, colTeamID))
	if !ok {
		return model.Row{}, false
	}

	teamName := CellValue(cells, colTeamName)
	if teamName == "" {
		teamName = PlaceholderTeamName(teamID)
	}

	return model.Row{
		TeamID:   teamID,
		TeamName: teamName,
		First: model.Entry{
			Name:       CellValue(cells, colFirstName),
			University: CellValue(cells, colFirstUniversity),
		},
		Second: model.Entry{
			Name:       CellValue(cells, colSecondName),
			University: CellValue(cells, colSecondUniversity),
		},
	}, true
}
