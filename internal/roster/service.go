// Package roster implements the registry's operations: add a student,
// add a grade, delete a student, list with averages.
//
// Each operation is one linear transaction — validate the input,
// apply a single change through the storage backend, done. The
// Service only sees the storage.Storage interface, so the same code
// runs against the JSON file and the SQLite backend.
package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/acolli/registro-studenti/internal/storage"
	"github.com/acolli/registro-studenti/internal/types"
	"github.com/acolli/registro-studenti/internal/validation"
)

// Service carries the operations' two dependencies: the persistence
// backend and a configured validator instance.
type Service struct {
	store    storage.Storage
	validate *validator.Validate
}

// New returns a Service bound to the given backend.
func New(store storage.Storage) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
	}
}

// Summary is one line of the student listing: identity plus the
// computed grade average. Absent identity fields (possible in
// hand-edited files) are substituted with "N/A" so listing never
// crashes on an incomplete record.
type Summary struct {
	ID        string
	FirstName string
	LastName  string
	Average   float64
}

// notAvailable replaces missing identity fields on display only; the
// stored record is left exactly as found.
const notAvailable = "N/A"

// AddStudent validates and appends a new record.
//
// Identity fields are trimmed and must all be non-empty — the UI
// re-prompts for them interactively, but the operation guards on its
// own so a non-interactive caller cannot slip an invalid record in.
// rawGrades is parsed leniently (see validation.ParseGradeList); if
// nothing in it conforms, the whole operation aborts with
// validation.ErrNoValidGrades and the roster is untouched.
//
// No uniqueness check is made on the matricola: duplicates have
// always been allowed in the registry format.
func (s *Service) AddStudent(id, firstName, lastName, rawGrades string) (types.Student, error) {
	student := types.Student{
		ID:        strings.TrimSpace(id),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}

	if err := s.validate.Struct(student); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return types.Student{}, fmt.Errorf("invalid student: %s", validation.FormatErrors(verrs))
		}
		return types.Student{}, fmt.Errorf("invalid student: %w", err)
	}

	grades := validation.ParseGradeList(rawGrades)
	if len(grades) == 0 {
		return types.Student{}, validation.ErrNoValidGrades
	}
	for _, g := range grades {
		student.Grades = append(student.Grades, g)
	}

	if err := s.store.CreateStudent(student); err != nil {
		return types.Student{}, err
	}

	return student, nil
}

// AddGrade appends a parsed grade to the first record matching
// matricola. Returns storage.ErrStudentNotFound or
// validation.ErrInvalidGrade; in both cases nothing is persisted.
//
// The student is resolved BEFORE the grade is parsed: when both the
// matricola and the grade are wrong, the missing student is the error
// that gets reported — the grade of a student who does not exist is
// not worth validating.
func (s *Service) AddGrade(matricola, rawGrade string) (int, error) {
	matricola = strings.TrimSpace(matricola)

	if _, err := s.Find(matricola); err != nil {
		return 0, err
	}

	grade, err := validation.ParseGrade(rawGrade)
	if err != nil {
		return 0, err
	}

	if err := s.store.AddGrade(matricola, grade); err != nil {
		return 0, err
	}

	return grade, nil
}

// DeleteStudent removes the first record matching matricola.
// The interactive yes/no confirmation is the UI's concern; once this
// is called the removal is unconditional.
func (s *Service) DeleteStudent(matricola string) error {
	return s.store.DeleteStudent(strings.TrimSpace(matricola))
}

// Find returns the first record matching matricola, or
// storage.ErrStudentNotFound. Used by the UI to show who is about to
// be deleted before asking for confirmation.
func (s *Service) Find(matricola string) (types.Student, error) {
	students, err := s.store.GetStudents()
	if err != nil {
		return types.Student{}, err
	}

	matricola = strings.TrimSpace(matricola)
	for _, student := range students {
		if student.ID == matricola {
			return student, nil
		}
	}

	return types.Student{}, storage.ErrStudentNotFound
}

// List is a pure projection of the roster: no mutation, no
// persistence. Records appear in insertion order, each with its
// computed average.
func (s *Service) List() ([]Summary, error) {
	students, err := s.store.GetStudents()
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(students))
	for _, student := range students {
		summaries = append(summaries, Summary{
			ID:        orNA(student.ID),
			FirstName: orNA(student.FirstName),
			LastName:  orNA(student.LastName),
			Average:   Average(student.Grades),
		})
	}

	return summaries, nil
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
