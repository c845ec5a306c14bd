package excel

import "github.com/xuri/excelize/v2"

// Fill colors follow the house convention for RFP workbooks: dark blue for
// titles and table headers, medium blue for section labels.
const (
	fillTitle   = "366092"
	fillSection = "4472C4"
)

// styleSet holds the style IDs registered on one workbook. Styles depend
// only on band kind, never on content.
type styleSet struct {
	title   int
	section int
	header  int
	body    int
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillTitle}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, err
	}

	s.section, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillSection}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return s, err
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillTitle}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, err
	}

	s.body, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	return s, err
}

func (s styleSet) forBand(kind BandKind) int {
	switch kind {
	case BandTitle:
		return s.title
	case BandSection:
		return s.section
	case BandHeader:
		return s.header
	case BandData, BandProse:
		return s.body
	default:
		return 0
	}
}
