package excel

// BandKind classifies one visually distinct row in a rendered sheet.
// Styling is a pure function of the kind, never of the content.
type BandKind int

const (
	// BandTitle is the merged document-title row (bold 16, dark fill).
	BandTitle BandKind = iota
	// BandSection is a merged section/table label row (bold 14, medium fill).
	BandSection
	// BandHeader is a table header row (bold, dark fill, one cell per column).
	BandHeader
	// BandData is a table data row (wrap text, top aligned).
	BandData
	// BandProse is a single merged wrapped-text row.
	BandProse
	// BandSpacer is an empty row between blocks.
	BandSpacer
)

// Band is one row (or merged row) of the output sheet. Title, Section and
// Prose bands carry a single cell spanning Span columns; Header and Data
// bands carry one cell per column.
type Band struct {
	Kind  BandKind
	Cells []string
	Span  int
}

// Layout is the deterministic projection of one extracted document: the
// ordered band sequence plus display metadata. Two projections of identical
// input produce identical Layouts.
type Layout struct {
	SheetName string
	Widths    []float64
	Bands     []Band
	// DroppedRows aggregates the table parser's reconciliation diagnostic
	// across every table in the document.
	DroppedRows int
}

func titleBand(text string, span int) Band {
	return Band{Kind: BandTitle, Cells: []string{text}, Span: span}
}

func sectionBand(text string, span int) Band {
	return Band{Kind: BandSection, Cells: []string{text}, Span: span}
}

func proseBand(text string, span int) Band {
	return Band{Kind: BandProse, Cells: []string{text}, Span: span}
}

func spacerBand() Band {
	return Band{Kind: BandSpacer}
}

// maxColumns returns the widest band in the layout, counting merged spans.
func (l Layout) maxColumns() int {
	max := 1
	for _, b := range l.Bands {
		n := len(b.Cells)
		if b.Span > n {
			n = b.Span
		}
		if n > max {
			max = n
		}
	}
	return max
}
