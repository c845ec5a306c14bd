package constants

// ExtractionKind is the category tag for one of the five RFP extractions.
type ExtractionKind string

// Stable values (used in filenames, job records and log events).
const (
	KindBOQ     ExtractionKind = "BOQ"
	KindPQ      ExtractionKind = "PQ"
	KindTQ      ExtractionKind = "TQ"
	KindSummary ExtractionKind = "SUMMARY"
	KindPayment ExtractionKind = "PAYMENT"
)

// AllKinds lists every extraction kind in canonical order. The order is the
// sheet order of the combined workbook.
var AllKinds = []ExtractionKind{KindBOQ, KindPQ, KindTQ, KindSummary, KindPayment}

// SheetNames maps each kind to its sheet name in the combined workbook.
var SheetNames = map[ExtractionKind]string{
	KindBOQ:     "BOQ",
	KindPQ:      "Prequalification",
	KindTQ:      "Technical_Qualification",
	KindSummary: "Summary",
	KindPayment: "Payment_Terms",
}

// MarkdownFilenames maps each kind to its extracted-markdown filename inside
// a session's extracted/ directory.
var MarkdownFilenames = map[ExtractionKind]string{
	KindBOQ:     "boq.md",
	KindPQ:      "prequalification.md",
	KindTQ:      "technical_qualification.md",
	KindSummary: "summary.md",
	KindPayment: "payment_terms.md",
}

// ExcelFilenames maps each kind to its per-kind workbook filename inside a
// session's excel/ directory.
var ExcelFilenames = map[ExtractionKind]string{
	KindBOQ:     "boq.xlsx",
	KindPQ:      "prequalification.xlsx",
	KindTQ:      "technical_qualification.xlsx",
	KindSummary: "summary.xlsx",
	KindPayment: "payment_terms.xlsx",
}

func (k ExtractionKind) String() string { return string(k) }
