package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Render materializes a Layout as a single-sheet workbook. Band order maps
// one band to one row; merged bands span their declared width.
func Render(l Layout) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := l.SheetName
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, fmt.Errorf("register styles: %w", err)
	}

	row := 1
	for _, band := range l.Bands {
		if band.Kind == BandSpacer {
			row++
			continue
		}
		if err := writeBand(f, sheet, styles, band, row); err != nil {
			return nil, err
		}
		row++
	}

	for i, width := range l.Widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}
	return f, nil
}

func writeBand(f *excelize.File, sheet string, styles styleSet, band Band, row int) error {
	style := styles.forBand(band.Kind)

	switch band.Kind {
	case BandTitle, BandSection, BandProse:
		span := band.Span
		if span < 1 {
			span = 1
		}
		start, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(span, row)
		if err != nil {
			return err
		}
		if span > 1 {
			if err := f.MergeCell(sheet, start, end); err != nil {
				return fmt.Errorf("merge %s:%s: %w", start, end, err)
			}
		}
		if err := f.SetCellValue(sheet, start, band.Cells[0]); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, start, end, style)

	case BandHeader, BandData:
		for i, cell := range band.Cells {
			name, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, name, name, style); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// RenderToFile renders the layout and writes the workbook to path.
func RenderToFile(l Layout, path string) error {
	f, err := Render(l)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx save: %w", err)
	}
	return nil
}
