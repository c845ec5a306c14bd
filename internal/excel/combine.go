package excel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
)

// Combine merges the per-kind single-sheet workbooks found in dir into one
// multi-sheet workbook at outPath, one sheet per kind in canonical order.
// Missing inputs are silently skipped. Cell values, per-cell styling,
// merged ranges and column widths are carried over. Returns the sheet
// names actually included.
func Combine(dir, outPath string) ([]string, error) {
	combined := excelize.NewFile()
	defer combined.Close()

	var included []string
	for _, kind := range constants.AllKinds {
		srcPath := filepath.Join(dir, constants.ExcelFilenames[kind])
		if _, err := os.Stat(srcPath); err != nil {
			continue
		}
		sheetName := constants.SheetNames[kind]
		if err := copySheet(combined, srcPath, sheetName); err != nil {
			return nil, fmt.Errorf("combine %s: %w", srcPath, err)
		}
		included = append(included, sheetName)
	}

	if len(included) == 0 {
		return nil, fmt.Errorf("no input workbooks found in %s", dir)
	}

	// Drop the default sheet excelize seeds new files with.
	if err := combined.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	if err := combined.SaveAs(outPath); err != nil {
		return nil, fmt.Errorf("save combined workbook: %w", err)
	}
	return included, nil
}

// copySheet copies the active sheet of the workbook at srcPath into dst
// under sheetName.
func copySheet(dst *excelize.File, srcPath, sheetName string) error {
	src, err := excelize.OpenFile(srcPath)
	if err != nil {
		return fmt.Errorf("open source workbook: %w", err)
	}
	defer src.Close()

	sheets := src.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("source workbook has no sheets")
	}
	srcSheet := sheets[0]

	if _, err := dst.NewSheet(sheetName); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheetName, err)
	}

	rows, err := src.GetRows(srcSheet)
	if err != nil {
		return fmt.Errorf("read source rows: %w", err)
	}

	// Style IDs are workbook-local; translate them as they are first seen.
	styleCache := make(map[int]int)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if value != "" {
				if err := dst.SetCellValue(sheetName, cell, value); err != nil {
					return err
				}
			}
			srcStyle, err := src.GetCellStyle(srcSheet, cell)
			if err != nil || srcStyle == 0 {
				continue
			}
			dstStyle, ok := styleCache[srcStyle]
			if !ok {
				def, err := src.GetStyle(srcStyle)
				if err != nil {
					continue
				}
				dstStyle, err = dst.NewStyle(def)
				if err != nil {
					continue
				}
				styleCache[srcStyle] = dstStyle
			}
			if err := dst.SetCellStyle(sheetName, cell, cell, dstStyle); err != nil {
				return err
			}
		}
	}

	merges, err := src.GetMergeCells(srcSheet)
	if err != nil {
		return fmt.Errorf("read merged cells: %w", err)
	}
	for _, m := range merges {
		if err := dst.MergeCell(sheetName, m.GetStartAxis(), m.GetEndAxis()); err != nil {
			return err
		}
	}

	// Column widths for every column the sheet actually uses.
	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	for c := 1; c <= maxCols; c++ {
		col, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return err
		}
		width, err := src.GetColWidth(srcSheet, col)
		if err != nil {
			continue
		}
		if err := dst.SetColWidth(sheetName, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
