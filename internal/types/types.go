// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the roster service, storage backends, and UI can all import types
// without depending on each other.
package types

// Student represents one student record in the registry.
//
// Struct tags serve two purposes:
//
//  1. json:"..." — maps each field to its key in the persisted file.
//     The on-disk format predates this program (it is hand-editable and
//     shared with other tooling), so the Italian key names are part of
//     the contract: matricola, nome, cognome, voti.
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "required" means the field must be non-empty. Callers
//     trim whitespace before validating, so "   " fails too.
//
// Grades is []any rather than []int on purpose. The file is
// hand-editable: a voti array may contain strings or out-of-range
// numbers. Decoding those into []int would fail the whole file and
// wrongly discard every record. Instead we load whatever is there,
// skip non-numeric entries when computing averages, and never remove
// them from storage. Grades added through this program are always int
// values in the 18–30 range.
type Student struct {
	ID        string `json:"matricola" validate:"required"`
	FirstName string `json:"nome"      validate:"required"`
	LastName  string `json:"cognome"   validate:"required"`
	Grades    []any  `json:"voti"`
}
