// Package reader loads raw roster rows from spreadsheet and CSV files.
package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/festy23/event_checkin/internal/roster/model"
)

// Sheet is the raw content of one worksheet.
type Sheet struct {
	Name string
	Rows [][]string
}

// ReadWorkbook returns every sheet of the workbook at path. The format is
// chosen by extension: .xlsx/.xlsm via excelize, .xls via extrame/xls.
func ReadWorkbook(path string) ([]Sheet, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".xls":
		return readXLS(path)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, ext)
	}
}

func readXLSX(path string) ([]Sheet, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	names := file.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		// Raw values keep numeric ids free of display formatting.
		rows, err := file.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q of %s: %w", name, path, err)
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// xlsScanColumns is the minimum number of columns read per .xls row. Rows
// built from cell records carry no reliable last-column marker.
const xlsScanColumns = 16

func readXLS(path string) ([]Sheet, error) {
	workbook, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	if workbook == nil {
		return nil, fmt.Errorf("failed to open workbook %s: no workbook stream", path)
	}

	sheets := make([]Sheet, 0, workbook.NumSheets())
	for i := 0; i < workbook.NumSheets(); i++ {
		ws := workbook.GetSheet(i)
		if ws == nil {
			continue
		}

		rows := make([][]string, 0, int(ws.MaxRow)+1)
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := xlsRow(ws, r)
			if row == nil {
				continue
			}
			width := row.LastCol()
			if width < xlsScanColumns {
				width = xlsScanColumns
			}
			cells := make([]string, width)
			for c := range cells {
				cells[c] = row.Col(c)
			}
			rows = append(rows, trimTrailingEmpty(cells))
		}
		sheets = append(sheets, Sheet{Name: ws.Name, Rows: rows})
	}
	return sheets, nil
}

// xlsRow returns row r of ws, or nil when the sheet has no such row.
// WorkSheet.Row panics on rows that were never recorded.
func xlsRow(ws *xls.WorkSheet, r int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(r)
}

func trimTrailingEmpty(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}
