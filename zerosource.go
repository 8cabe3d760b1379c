// Package zerosource validates and inspects "Zero Source" documents: README
// files structured so that a complete implementation can be bootstrapped
// from the prose alone.
//
// The package holds the domain types, the interfaces of external
// collaborators, and the pure section extractor and structural validator.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, gemini/, github/).
package zerosource
