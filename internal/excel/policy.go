package excel

import (
	"fmt"
	"strings"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
)

// Strategy selects how a projector walks the extracted document.
type Strategy int

const (
	// TableOriented scans the whole document for tables and labels each by
	// keyword-matching its headers; remaining notes sections become prose.
	TableOriented Strategy = iota
	// SectionOriented walks level-2 sections in document order, rendering
	// each as a table band or prose rows.
	SectionOriented
)

// LabelRule maps a keyword vocabulary to a section label for the
// table-oriented strategy. Rules are evaluated in declaration order; the
// first hit wins.
type LabelRule struct {
	Keywords []string
	Label    string
	// FirstTableOnly restricts the rule to the document's first table.
	FirstTableOnly bool
}

// NotesSection names a heading section appended as prose after the tables
// of a table-oriented projection.
type NotesSection struct {
	// Match is a case-insensitive substring of the section title.
	Match string
	// Display is the band label.
	Display string
}

// Policy is the per-kind layout policy: same algorithm, different section
// vocabulary, widths and title conventions.
type Policy struct {
	Kind         constants.ExtractionKind
	SheetName    string
	DefaultTitle string
	Strategy     Strategy
	// TitleSpan is the merge width of title and prose bands.
	TitleSpan int
	// Widths are per-column presets; the last value repeats for any extra
	// columns. A display convention only, but a deterministic one.
	Widths []float64
	// LabelPrefix builds the positional fallback label, e.g. "BOQ TABLE 2".
	LabelPrefix string
	LabelRules  []LabelRule
	// NotesSections only apply to the table-oriented strategy.
	NotesSections []NotesSection
	// SectionLevel is the heading level the section-oriented strategy
	// splits at.
	SectionLevel int
}

// PolicyFor returns the layout policy for one extraction kind.
func PolicyFor(kind constants.ExtractionKind) (Policy, bool) {
	p, ok := policies[kind]
	return p, ok
}

var policies = map[constants.ExtractionKind]Policy{
	constants.KindBOQ: {
		Kind:         constants.KindBOQ,
		SheetName:    "BOQ - Bill of Quantities",
		DefaultTitle: "Bill of Quantities (BOQ)",
		Strategy:     TableOriented,
		TitleSpan:    6,
		Widths:       []float64{8, 35, 20},
		LabelPrefix:  "BOQ",
		LabelRules: []LabelRule{
			{Keywords: []string{"position", "manpower", "resource"}, Label: "MANPOWER REQUIREMENTS", FirstTableOnly: true},
			{Keywords: []string{"cost", "price", "amount"}, Label: "COST STRUCTURE"},
		},
		NotesSections: []NotesSection{
			{Match: "boq notes", Display: "BOQ NOTES & INSTRUCTIONS"},
		},
	},
	constants.KindPQ: {
		Kind:         constants.KindPQ,
		SheetName:    "Pre-Qualification Criteria",
		DefaultTitle: "Pre-Qualification Criteria",
		Strategy:     TableOriented,
		TitleSpan:    6,
		Widths:       []float64{8, 50, 30},
		LabelPrefix:  "PRE-QUALIFICATION",
		LabelRules: []LabelRule{
			{Keywords: []string{"description", "mandatory", "documents"}, Label: "PRE-QUALIFICATION CRITERIA"},
			{Keywords: []string{"details", "section", "checklist"}, Label: "EVALUATION CHECKLIST"},
			{Keywords: []string{"particulars", "instructions"}, Label: "BID SUBMISSION INSTRUCTIONS"},
			{Keywords: []string{"item", "emd", "fee", "validity"}, Label: "DEADLINES & REQUIREMENTS"},
		},
		NotesSections: []NotesSection{
			{Match: "general notes", Display: "1. GENERAL NOTES"},
			{Match: "rejection criteria", Display: "4. REJECTION CRITERIA"},
		},
	},
	constants.KindTQ: {
		Kind:         constants.KindTQ,
		SheetName:    "Technical Qualification",
		DefaultTitle: "Technical Qualification Criteria (Pure Technical Scoring)",
		Strategy:     SectionOriented,
		TitleSpan:    5,
		Widths:       []float64{8, 50, 15, 40, 30},
		SectionLevel: 2,
	},
	constants.KindSummary: {
		Kind:         constants.KindSummary,
		SheetName:    "RFP Key Details",
		DefaultTitle: "RFP Key Details Summary",
		Strategy:     SectionOriented,
		TitleSpan:    2,
		Widths:       []float64{30, 80},
		SectionLevel: 2,
	},
	constants.KindPayment: {
		Kind:         constants.KindPayment,
		SheetName:    "Payment Terms",
		DefaultTitle: "Payment Terms (Extracted from RFP)",
		Strategy:     SectionOriented,
		TitleSpan:    4,
		Widths:       []float64{8, 60, 30},
		SectionLevel: 2,
	},
}

// labelFor infers a table's section label from its headers. Rules run in
// order; the positional label is the documented fallback.
func (p Policy) labelFor(headers []string, tableIndex int) string {
	joined := strings.ToLower(strings.Join(headers, " "))
	for _, rule := range p.LabelRules {
		if rule.FirstTableOnly && tableIndex != 0 {
			continue
		}
		for _, kw := range rule.Keywords {
			if strings.Contains(joined, kw) {
				return rule.Label
			}
		}
	}
	return fmt.Sprintf("%s TABLE %d", p.LabelPrefix, tableIndex+1)
}
