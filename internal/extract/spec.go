package extract

import (
	"fmt"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
)

// Spec is the static configuration for one extraction kind: a fixed system
// instruction embedding the verbatim-extraction rules and the markdown
// section skeleton the projector expects, plus a user-prompt template the
// document text is substituted into. Specs are defined once and shared
// read-only across sessions.
type Spec struct {
	Kind   constants.ExtractionKind
	Name   string
	System string
	// UserTemplate has exactly one %s placeholder for the document text.
	UserTemplate string
}

// UserPrompt renders the user instruction for the given document text.
func (s Spec) UserPrompt(document string) string {
	return fmt.Sprintf(s.UserTemplate, document)
}

// Specs returns the five extraction specs in canonical order.
func Specs() []Spec {
	return []Spec{
		{
			Kind:         constants.KindBOQ,
			Name:         "Bill of Quantities",
			System:       boqSystemPrompt,
			UserTemplate: boqUserTemplate,
		},
		{
			Kind:         constants.KindPQ,
			Name:         "Pre-Qualification Criteria",
			System:       pqSystemPrompt,
			UserTemplate: pqUserTemplate,
		},
		{
			Kind:         constants.KindTQ,
			Name:         "Technical Qualification",
			System:       tqSystemPrompt,
			UserTemplate: tqUserTemplate,
		},
		{
			Kind:         constants.KindSummary,
			Name:         "RFP Key Details Summary",
			System:       summarySystemPrompt,
			UserTemplate: summaryUserTemplate,
		},
		{
			Kind:         constants.KindPayment,
			Name:         "Payment Terms",
			System:       paymentSystemPrompt,
			UserTemplate: paymentUserTemplate,
		},
	}
}

// SpecFor returns the extraction spec for one kind.
func SpecFor(kind constants.ExtractionKind) (Spec, bool) {
	for _, s := range Specs() {
		if s.Kind == kind {
			return s, true
		}
	}
	return Spec{}, false
}
