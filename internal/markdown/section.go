package markdown

import "strings"

// Section is a named span of a markdown document: the heading text and the
// raw body between that heading and the next heading at the same or a
// higher level.
type Section struct {
	Title string
	Body  string
}

// headingLevel returns the number of leading '#' markers when the line is a
// markdown heading, or 0 otherwise.
func headingLevel(line string) int {
	trimmed := strings.TrimSpace(line)
	n := 0
	for n < len(trimmed) && trimmed[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	if n == len(trimmed) || trimmed[n] == ' ' || trimmed[n] == '\t' {
		return n
	}
	return 0
}

// headingTitle strips the '#' markers and surrounding whitespace from a
// heading line. No further normalization; display transforms such as
// upper-casing belong to the projector.
func headingTitle(line string) string {
	trimmed := strings.TrimSpace(line)
	return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
}

// SplitSections splits text into sections at headings of the given level.
// A section runs from its heading line to the line before the next heading
// of the same or a higher level (fewer '#' markers), or end of input.
// Content before the first heading at the requested level is discarded.
func SplitSections(text string, level int) []Section {
	secs, _ := splitSections(text, level)
	return secs
}

// SplitSectionsWithPreamble behaves like SplitSections but attaches content
// preceding the first section as an implicit untitled section, when any
// non-blank preamble exists.
func SplitSectionsWithPreamble(text string, level int) []Section {
	secs, preamble := splitSections(text, level)
	if strings.TrimSpace(preamble) == "" {
		return secs
	}
	return append([]Section{{Title: "", Body: preamble}}, secs...)
}

func splitSections(text string, level int) ([]Section, string) {
	lines := strings.Split(text, "\n")

	var sections []Section
	var preamble []string
	var current *Section
	var body []string

	flush := func() {
		if current != nil {
			current.Body = strings.Join(body, "\n")
			sections = append(sections, *current)
			current = nil
		}
		body = nil
	}

	for _, line := range lines {
		lvl := headingLevel(line)
		if lvl == level {
			flush()
			current = &Section{Title: headingTitle(line)}
			continue
		}
		if lvl != 0 && lvl < level {
			// A higher-level heading closes the open section.
			flush()
		}
		switch {
		case current != nil:
			body = append(body, line)
		case len(sections) == 0:
			preamble = append(preamble, line)
		default:
			// Content between or after sections that belongs to no
			// target-level section is discarded.
		}
	}
	flush()
	return sections, strings.Join(preamble, "\n")
}

// DocumentTitle returns the text of the first level-1 heading, or fallback
// when the document has none.
func DocumentTitle(text, fallback string) string {
	for _, line := range strings.Split(text, "\n") {
		if headingLevel(line) == 1 {
			if t := headingTitle(line); t != "" {
				return t
			}
		}
	}
	return fallback
}
