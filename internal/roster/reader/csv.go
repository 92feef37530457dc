package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/festy23/event_checkin/internal/roster/model"
)

// CSVRecord is one line of the fallback roster CSV. Values are trimmed but
// otherwise unvalidated.
type CSVRecord struct {
	TeamID      string
	TeamName    string
	Room        string
	StudentName string
	University  string
}

// ReadCSV reads the fallback roster CSV at path.
func ReadCSV(path string) ([]CSVRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}
	return records, nil
}

// ParseCSV reads header-addressed roster records from r. Columns may appear in
// any order; only team_id is required.
func ParseCSV(r io.Reader) ([]CSVRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	if _, ok := index["team_id"]; !ok {
		return nil, model.ErrMissingTeamIDColumn
	}

	field := func(line []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(line) {
			return ""
		}
		return strings.TrimSpace(line[i])
	}

	var records []CSVRecord
	for {
		line, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, CSVRecord{
			TeamID:      field(line, "team_id"),
			TeamName:    field(line, "team_name"),
			Room:        field(line, "room"),
			StudentName: field(line, "student_name"),
			University:  field(line, "university"),
		})
	}
	return records, nil
}
