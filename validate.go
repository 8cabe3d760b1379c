package zerosource

// RequiredSections returns the level-2 sections every document must contain,
// in the order they are reported when missing.
func RequiredSections() []string {
	return []string{"Description", "Functionality", "Technical Implementation"}
}

// ValidationResult reports the structural completeness of a document.
type ValidationResult struct {
	Valid           bool     `json:"valid"`
	MissingSections []string `json:"missingSections"`
}

// ValidateStructure checks that every required section is present in the
// document. Names match exactly; missing names are reported in the order of
// RequiredSections. It performs no I/O and never fails.
func ValidateStructure(document string) ValidationResult {
	sections := ExtractSections(document)

	missing := []string{}
	for _, name := range RequiredSections() {
		if !sections.Has(name) {
			missing = append(missing, name)
		}
	}

	return ValidationResult{
		Valid:           len(missing) == 0,
		MissingSections: missing,
	}
}
