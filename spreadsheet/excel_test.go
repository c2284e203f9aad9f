package spreadsheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kelydev/apiClinica/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "equipos.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestExportImportRoundTrip(t *testing.T) {
	in := []models.Equipo{
		{ID: 10, Nombre: "Monitor", Descripcion: "Signos vitales"},
		{ID: 11, Nombre: "Desfibrilador", Descripcion: "Portátil"},
	}

	data, err := ExportRows(in)
	require.NoError(t, err)

	out, err := ImportRows(writeTemp(t, data))
	require.NoError(t, err)
	assert.Equal(t, []models.Equipo{
		{Nombre: "Monitor", Descripcion: "Signos vitales"},
		{Nombre: "Desfibrilador", Descripcion: "Portátil"},
	}, out)
}

func TestExportSheetLayout(t *testing.T) {
	data, err := ExportRows([]models.Equipo{{ID: 1, Nombre: "Monitor", Descripcion: "x"}})
	require.NoError(t, err)

	f, err := excelize.OpenFile(writeTemp(t, data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id", "nombre", "descripcion"}, {"1", "Monitor", "x"}}, rows)
}

func TestImportMatchesHeadersAndKeepsPartialRows(t *testing.T) {
	f := excelize.NewFile()
	sheet := "Hoja"
	f.SetSheetName("Sheet1", sheet)
	f.SetCellValue(sheet, "A1", "Descripcion")
	f.SetCellValue(sheet, "B1", " Nombre ")
	f.SetCellValue(sheet, "A2", "Signos vitales")
	f.SetCellValue(sheet, "B2", "Monitor")
	f.SetCellValue(sheet, "B3", "Camilla")
	f.SetCellValue(sheet, "A5", "Solo descripcion")
	path := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, f.SaveAs(path))

	out, err := ImportRows(path)
	require.NoError(t, err)
	assert.Equal(t, []models.Equipo{
		{Nombre: "Monitor", Descripcion: "Signos vitales"},
		{Nombre: "Camilla"},
		{Descripcion: "Solo descripcion"},
	}, out)
}

func TestImportEmptyWorkbook(t *testing.T) {
	data, err := excelize.NewFile().WriteToBuffer()
	require.NoError(t, err)

	out, err := ImportRows(writeTemp(t, data.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestImportNotAWorkbook(t *testing.T) {
	_, err := ImportRows(writeTemp(t, []byte("not a zip")))
	assert.Error(t, err)
}
