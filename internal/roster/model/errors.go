package model

import "errors"

var (
	// ErrUnsupportedFormat indicates a roster file extension that cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported roster file format")
	// ErrMissingTeamIDColumn indicates a CSV header without a team_id column.
	ErrMissingTeamIDColumn = errors.New("csv header is missing team_id column")
	// ErrNoRooms indicates an import attempted without any configured rooms.
	ErrNoRooms = errors.New("no rooms configured")
)
