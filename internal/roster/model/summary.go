package model

// Import sources.
const (
	SourceSpreadsheets = "spreadsheets"
	SourceCSV          = "csv"
	SourceNone         = "none"
)

// ImportSummary reports what a single import pass did.
type ImportSummary struct {
	// Source is the kind of input used: spreadsheets, csv or none.
	Source string `json:"source"`
	// Files lists the paths that were read.
	Files []string `json:"files"`
	// RowsRead counts every row seen, including skipped ones.
	RowsRead int `json:"rows_read"`
	// RowsSkipped counts rows rejected by the parser.
	RowsSkipped      int `json:"rows_skipped"`
	TeamsInserted    int `json:"teams_inserted"`
	StudentsInserted int `json:"students_inserted"`
	// Skipped is true when the import did not run because the store was not empty.
	Skipped bool `json:"skipped"`
}
