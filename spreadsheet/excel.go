// Package spreadsheet converts equipment rows to and from xlsx workbooks.
package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kelydev/apiClinica/models"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet written by ExportRows.
const SheetName = "Equipos"

var headers = []interface{}{"id", "nombre", "descripcion"}

// ImportRows reads the first sheet of the workbook at path. The first row is the
// header; columns are matched by name, so their order does not matter. Rows
// with missing cells come back as partial records. Blank rows are skipped.
func ImportRows(path string) ([]models.Equipo, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return []models.Equipo{}, nil
	}

	columns := map[string]int{}
	for i, h := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	equipos := lo.FilterMap(rows[1:], func(row []string, _ int) (models.Equipo, bool) {
		e := models.Equipo{Nombre: cell(row, "nombre"), Descripcion: cell(row, "descripcion")}
		return e, e.Nombre != "" || e.Descripcion != ""
	})
	return equipos, nil
}

// ExportRows writes equipos to a single-sheet workbook and returns its bytes.
func ExportRows(equipos []models.Equipo) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("error naming sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("error writing header: %w", err)
	}

	rows := lo.Map(equipos, func(e models.Equipo, _ int) []interface{} {
		return []interface{}{e.ID, e.Nombre, e.Descripcion}
	})
	for i := range rows {
		if err := f.SetSheetRow(SheetName, "A"+strconv.Itoa(i+2), &rows[i]); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
