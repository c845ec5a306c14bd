package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTables_SingleTable(t *testing.T) {
	res := ParseTables("# Title\n\n| A | B |\n|---|---|\n| 1 | 2 |\n")

	require.Len(t, res.Tables, 1)
	assert.Equal(t, []string{"A", "B"}, res.Tables[0].Headers)
	require.Len(t, res.Tables[0].Rows, 1)
	assert.Equal(t, []string{"1", "2"}, res.Tables[0].Rows[0])
	assert.Zero(t, res.DroppedRows)
}

func TestParseTables_HeaderCountInvariant(t *testing.T) {
	input := "| Sr. No. | Parameter | Marks |\n| --- | --- | --- |\n" +
		"| 1 | Experience | 40 |\n| 2 | Turnover | 30 |\n"
	res := ParseTables(input)

	require.Len(t, res.Tables, 1)
	tbl := res.Tables[0]
	require.Len(t, tbl.Headers, 3)
	for _, row := range tbl.Rows {
		assert.Len(t, row, len(tbl.Headers))
	}
	assert.Len(t, tbl.Rows, 2)
}

func TestParseTables_MismatchedRowDropped(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRows int
		dropped  int
	}{
		{
			name:     "too many cells",
			input:    "| A | B |\n|---|---|\n| 1 | 2 | 3 |\n",
			wantRows: 0,
			dropped:  1,
		},
		{
			name:     "too few cells",
			input:    "| A | B | C |\n|---|---|---|\n| 1 | 2 |\n| x | y | z |\n",
			wantRows: 1,
			dropped:  1,
		},
		{
			name:     "all rows match",
			input:    "| A | B |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |\n",
			wantRows: 2,
			dropped:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseTables(tt.input)
			require.Len(t, res.Tables, 1)
			assert.Len(t, res.Tables[0].Rows, tt.wantRows)
			assert.Equal(t, tt.dropped, res.DroppedRows)
		})
	}
}

func TestParseTables_MalformedSeparatorIsProse(t *testing.T) {
	input := "| A | B |\n| x | y |\n| 1 | 2 |\n"
	res := ParseTables(input)

	assert.Empty(t, res.Tables)
	// All three lines pass through untouched.
	assert.Len(t, res.Prose, 4) // includes trailing empty line from the final \n
}

func TestParseTables_BlankCellRowsDropped(t *testing.T) {
	input := "| A | B |\n|---|---|\n| 1 | 2 |\n|   |   |\n"
	res := ParseTables(input)

	require.Len(t, res.Tables, 1)
	assert.Len(t, res.Tables[0].Rows, 1)
	assert.Zero(t, res.DroppedRows)
}

func TestParseTables_ExtraSeparatorLinesIgnored(t *testing.T) {
	input := "| A | B |\n|---|---|\n| 1 | 2 |\n|---|---|\n| 3 | 4 |\n"
	res := ParseTables(input)

	require.Len(t, res.Tables, 1)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, res.Tables[0].Rows)
}

func TestParseTables_ProseInterleaved(t *testing.T) {
	input := "intro line\n\n| A | B |\n|---|---|\n| 1 | 2 |\n\noutro line\n"
	res := ParseTables(input)

	require.Len(t, res.Tables, 1)
	assert.Contains(t, res.Prose, "intro line")
	assert.Contains(t, res.Prose, "outro line")
}

func TestParseTables_MultipleTables(t *testing.T) {
	input := "| A | B |\n|---|---|\n| 1 | 2 |\n\n" +
		"| X | Y | Z |\n|---|---|---|\n| a | b | c |\n"
	res := ParseTables(input)

	require.Len(t, res.Tables, 2)
	assert.Equal(t, []string{"A", "B"}, res.Tables[0].Headers)
	assert.Equal(t, []string{"X", "Y", "Z"}, res.Tables[1].Headers)
}

func TestParseTables_Idempotent(t *testing.T) {
	input := "prose\n| A | B |\n|---|---|\n| 1 | 2 |\n| only one |\n"
	first := ParseTables(input)
	second := ParseTables(input)

	assert.Equal(t, first, second)
}

func TestParseTables_EmptyInput(t *testing.T) {
	res := ParseTables("")
	assert.Empty(t, res.Tables)
	assert.Zero(t, res.DroppedRows)
}
