package entities

// ResolutionOutcome is the result class of a caseload name lookup.
type ResolutionOutcome string

const (
	ResolutionResolved        ResolutionOutcome = "resolved"
	ResolutionAmbiguous       ResolutionOutcome = "ambiguous"
	ResolutionNotFound        ResolutionOutcome = "not_found"
	ResolutionNoNameExtracted ResolutionOutcome = "no_name_extracted"
)

// Resolution is the outcome of matching an extracted patient name against a
// worker's caseload. Resolution only ever reads the caseload.
type Resolution struct {
	Outcome     ResolutionOutcome
	Beneficiary *Beneficiary  // set only when Outcome is resolved
	Candidates  []Beneficiary // set only when Outcome is ambiguous
}

// Resolved reports whether exactly one beneficiary was matched.
func (r Resolution) Resolved() bool {
	return r.Outcome == ResolutionResolved && r.Beneficiary != nil
}
