package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
)

func writeWorkbook(t *testing.T, dir string, kind constants.ExtractionKind, content string) {
	t.Helper()
	p, ok := PolicyFor(kind)
	require.True(t, ok)
	path := filepath.Join(dir, constants.ExcelFilenames[kind])
	require.NoError(t, RenderToFile(Project(content, p), path))
}

func TestCombine_CanonicalSheetOrder(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, constants.KindBOQ, "| Item | Qty |\n|---|---|\n| Pipe | 12 |\n")
	writeWorkbook(t, dir, constants.KindTQ, "## Scoring\n- experience weighted 40%\n")
	writeWorkbook(t, dir, constants.KindPayment, "## Advance\n- 10% on signing\n")

	outPath := filepath.Join(dir, "combined.xlsx")
	included, err := Combine(dir, outPath)
	require.NoError(t, err)
	assert.Equal(t, []string{
		constants.SheetNames[constants.KindBOQ],
		constants.SheetNames[constants.KindTQ],
		constants.SheetNames[constants.KindPayment],
	}, included)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, included, f.GetSheetList())
}

func TestCombine_CarriesValuesAndMerges(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, constants.KindBOQ, "| Item | Qty |\n|---|---|\n| Pipe | 12 |\n")

	outPath := filepath.Join(dir, "combined.xlsx")
	_, err := Combine(dir, outPath)
	require.NoError(t, err)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()

	sheet := constants.SheetNames[constants.KindBOQ]
	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Bill of Quantities (BOQ)", title)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 5)
	assert.Equal(t, []string{"Item", "Qty"}, rows[3])
	assert.Equal(t, []string{"Pipe", "12"}, rows[4])

	merges, err := f.GetMergeCells(sheet)
	require.NoError(t, err)
	assert.NotEmpty(t, merges)
}

func TestCombine_SkipsMissingInputs(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, constants.KindSummary, "## Client Name\nAcme Utilities\n")

	included, err := Combine(dir, filepath.Join(dir, "combined.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, []string{constants.SheetNames[constants.KindSummary]}, included)
}

func TestCombine_NoInputsIsError(t *testing.T) {
	dir := t.TempDir()
	_, err := Combine(dir, filepath.Join(dir, "combined.xlsx"))
	assert.Error(t, err)
}
