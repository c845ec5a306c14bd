package excel

import (
	"strings"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/markdown"
)

// Project turns one extracted markdown document into a Layout under the
// given policy. Pure and deterministic: identical content and policy yield
// an identical band sequence.
func Project(content string, p Policy) Layout {
	switch p.Strategy {
	case SectionOriented:
		return projectSections(content, p)
	default:
		return projectTables(content, p)
	}
}

// projectTables scans the whole document for tables regardless of section
// boundaries, labels each by its header vocabulary, then appends the
// configured notes sections as prose.
func projectTables(content string, p Policy) Layout {
	l := Layout{SheetName: p.SheetName}

	l.Bands = append(l.Bands,
		titleBand(markdown.DocumentTitle(content, p.DefaultTitle), p.TitleSpan),
		spacerBand(),
	)

	res := markdown.ParseTables(content)
	l.DroppedRows += res.DroppedRows
	for i, t := range res.Tables {
		l.Bands = append(l.Bands, sectionBand(p.labelFor(t.Headers, i), len(t.Headers)))
		l.Bands = append(l.Bands, Band{Kind: BandHeader, Cells: t.Headers})
		for _, row := range t.Rows {
			l.Bands = append(l.Bands, Band{Kind: BandData, Cells: row})
		}
		l.Bands = append(l.Bands, spacerBand())
	}

	// Preamble-preserving split: BOQ/PQ documents often open with text
	// before any heading, and notes matching must not skip past it.
	sections := markdown.SplitSectionsWithPreamble(content, 2)
	for _, notes := range p.NotesSections {
		sec, ok := sectionByTitle(sections, notes.Match)
		if !ok {
			continue
		}
		body := markdown.ParseTables(sec.Body)
		lines := nonBlank(body.Prose)
		if len(lines) == 0 {
			continue
		}
		l.Bands = append(l.Bands, sectionBand(notes.Display, p.TitleSpan))
		for _, line := range lines {
			l.Bands = append(l.Bands, proseBand(line, p.TitleSpan))
		}
		l.Bands = append(l.Bands, spacerBand())
	}

	l.Widths = widthsFor(p, l.maxColumns())
	return l
}

// projectSections walks the document's sections in order: each becomes a
// title band followed by its tables, or by one wrapped prose row per
// non-blank line with any leading bullet marker stripped.
func projectSections(content string, p Policy) Layout {
	l := Layout{SheetName: p.SheetName}

	l.Bands = append(l.Bands,
		titleBand(markdown.DocumentTitle(content, p.DefaultTitle), p.TitleSpan),
		spacerBand(),
	)

	for _, sec := range markdown.SplitSections(content, p.SectionLevel) {
		l.Bands = append(l.Bands, sectionBand(strings.ToUpper(sec.Title), p.TitleSpan))

		body := markdown.ParseTables(sec.Body)
		l.DroppedRows += body.DroppedRows
		for _, t := range body.Tables {
			l.Bands = append(l.Bands, Band{Kind: BandHeader, Cells: t.Headers})
			for _, row := range t.Rows {
				l.Bands = append(l.Bands, Band{Kind: BandData, Cells: row})
			}
		}
		for _, line := range nonBlank(body.Prose) {
			l.Bands = append(l.Bands, proseBand(stripBullet(line), p.TitleSpan))
		}
		l.Bands = append(l.Bands, spacerBand())
	}

	l.Widths = widthsFor(p, l.maxColumns())
	return l
}

func sectionByTitle(sections []markdown.Section, match string) (markdown.Section, bool) {
	needle := strings.ToLower(match)
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Title), needle) {
			return s, true
		}
	}
	return markdown.Section{}, false
}

func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// stripBullet removes a single leading list marker from a prose line.
func stripBullet(line string) string {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker))
		}
	}
	return line
}

// widthsFor expands the policy's width presets to the layout's column
// count, repeating the last preset for extra columns.
func widthsFor(p Policy, columns int) []float64 {
	if len(p.Widths) == 0 || columns <= 0 {
		return nil
	}
	widths := make([]float64, columns)
	for i := 0; i < columns; i++ {
		if i < len(p.Widths) {
			widths[i] = p.Widths[i]
		} else {
			widths[i] = p.Widths[len(p.Widths)-1]
		}
	}
	return widths
}
