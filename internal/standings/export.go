package standings

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet naming used by WriteXLSX.
const (
	SheetName  = "Archers"
	ExportFile = "archers.xlsx"
)

// columns is the number of columns in an export
const columns = 4 + ZoneCount

// Header returns the column header row of an export, zones most valuable first.
func Header() []string {
	h := make([]string, 0, columns)
	h = append(h, "#", "Name", "Club", "Total")
	for _, w := range weights {
		h = append(h, strconv.Itoa(w))
	}
	return h
}

// Row is one exported archer. Nil fields render as blank cells.
type Row struct {
	Rank  *int
	Name  string
	Club  string
	Total *int
	Zones [ZoneCount]*int
}

// Cells returns the row in column order with blanks as empty strings.
func (r Row) Cells() []any {
	cells := make([]any, 0, columns)
	cells = append(cells, intOrBlank(r.Rank), r.Name, r.Club, intOrBlank(r.Total))
	for _, z := range r.Zones {
		cells = append(cells, intOrBlank(z))
	}
	return cells
}

func intOrBlank(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

// Sheet is the tabular form of a ranked sequence.
type Sheet struct {
	Title string
	Rows  []Row
}

// Title is the group label of a ranked sequence: category, gender and age
// group of its first archer, translated with lang and upper-cased. Empty for
// an empty sequence.
func Title(ranked []Ranked, lang string) string {
	if len(ranked) == 0 {
		return ""
	}
	first := ranked[0]
	title := fmt.Sprintf("%s %s %s",
		Label(lang, first.Category), Label(lang, first.Gender), Label(lang, first.AgeGroup))
	return strings.TrimSpace(strings.ToUpper(title))
}

// ExportRows builds the sheet for ranked, which must be the exact sequence the
// standings table shows. The title is untranslated; replace it with Title for
// another language. Zone counts of zero are left blank.
func ExportRows(ranked []Ranked) Sheet {
	sheet := Sheet{Title: Title(ranked, ""), Rows: make([]Row, 0, len(ranked))}

	for _, r := range ranked {
		row := Row{
			Rank: r.Rank,
			Name: r.FullName(),
			Club: r.Club,
		}
		if r.Total != Unscored {
			total := r.Total
			row.Total = &total
		}
		for i, count := range r.ZoneCounts {
			if count > 0 {
				c := count
				row.Zones[i] = &c
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// WriteXLSX renders sheet as an xlsx workbook: the title merged across the
// first row, the header in the second row and one archer per following row.
func WriteXLSX(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return err
	}

	if err := f.SetCellValue(SheetName, "A1", sheet.Title); err != nil {
		return err
	}
	if err := f.MergeCell(SheetName, "A1", lastCol+"1"); err != nil {
		return err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", titleStyle); err != nil {
		return err
	}

	header := make([]any, columns)
	for i, h := range Header() {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A2", &header); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9EAD3"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A2", lastCol+"2", headerStyle); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		cells := row.Cells()
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetName, "B", "C", 24); err != nil {
		return err
	}

	return f.Write(w)
}
