// Package validation contains the pure input-validation rules for
// user-supplied data: grade parsing and human-readable rendering of
// struct validation failures.
//
// Everything in this package is a plain function from input to value
// or error — no prompting, no I/O. The "ask again until valid" retry
// loops live entirely in the UI layer, which means these rules can be
// unit-tested by calling them directly with good and bad inputs.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Grades are Italian university exam marks: 18 is the passing
// threshold, 30 the maximum.
const (
	GradeMin = 18
	GradeMax = 30
)

// ErrInvalidGrade means the input was not an integer in [GradeMin, GradeMax].
var ErrInvalidGrade = fmt.Errorf(
	"grade must be an integer between %d and %d", GradeMin, GradeMax)

// ErrNoValidGrades means a grade list contained no usable entry at all.
var ErrNoValidGrades = errors.New(
	"no valid grades entered (must be between 18 and 30)")

// ParseGradeList parses a comma-separated grade list such as "24,26,30".
//
// Each piece is trimmed and kept only if it consists entirely of
// decimal digits AND its value lies in [GradeMin, GradeMax]. Every
// non-conforming piece is silently dropped — "24, bad, 17, 31, 26"
// yields [24 26]. This lenient per-entry filtering is deliberate: a
// typo in one grade should not throw away the rest of the line.
//
// Returns an empty slice when nothing conforms; the caller decides
// whether that aborts the operation (see roster.AddStudent).
func ParseGradeList(raw string) []int {
	var grades []int

	for _, piece := range strings.Split(raw, ",") {
		piece = strings.TrimSpace(piece)
		if !isDigits(piece) {
			continue
		}

		// isDigits guarantees Atoi succeeds for anything that fits in
		// an int; values too large to fit error out and are dropped
		// like any other bad piece.
		n, err := strconv.Atoi(piece)
		if err != nil || n < GradeMin || n > GradeMax {
			continue
		}

		grades = append(grades, n)
	}

	return grades
}

// ParseGrade parses a single grade. Unlike ParseGradeList there is
// nothing to fall back on, so failure is reported instead of dropped:
// the input is trimmed, parsed as an integer, and range-checked.
// Returns ErrInvalidGrade otherwise.
func ParseGrade(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < GradeMin || n > GradeMax {
		return 0, ErrInvalidGrade
	}
	return n, nil
}

// isDigits reports whether s is non-empty and made of '0'–'9' only.
// Stricter than strconv alone: Atoi also accepts "+24" and "-5",
// which the grade-list format does not.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatErrors converts a slice of validator.FieldError values into a
// single operator-readable message.
//
// The go-playground/validator package returns one FieldError per
// failing struct field. We convert each to a plain English sentence
// and join them with ", " so the operator sees one line, e.g.:
//
//	field FirstName is required, field LastName is required
func FormatErrors(errs validator.ValidationErrors) string {
	var msgs []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return strings.Join(msgs, ", ")
}
