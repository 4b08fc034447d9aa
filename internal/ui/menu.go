// Package ui implements the interactive console menu.
//
// THE SPLIT BETWEEN UI AND CORE
// ─────────────────────────────
// Everything conversational lives here: the menu loop, the
// "ask again until valid" retry loops, the delete confirmation, and
// the two-decimal formatting of averages. The roster service stays
// pure (input → result or error), which is what makes it testable
// without a terminal — and makes this package testable too, because
// the reader and writer are injected rather than hard-wired to
// os.Stdin / os.Stdout.
//
// Every recoverable error prints a diagnostic and returns control to
// the menu. The program never exits because of a caught error; only
// choice 0 (or end of input) ends the loop.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/acolli/registro-studenti/internal/roster"
	"github.com/acolli/registro-studenti/internal/storage"
	"github.com/acolli/registro-studenti/internal/validation"
)

// Menu drives one interactive session over the given reader/writer.
type Menu struct {
	service *roster.Service
	in      *bufio.Scanner
	out     io.Writer
}

// New returns a Menu bound to the roster service and the I/O streams.
// Pass os.Stdin and os.Stdout in main; tests pass strings.Reader and
// bytes.Buffer.
func New(service *roster.Service, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		service: service,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run shows the menu, dispatches choices, and repeats until the
// operator picks 0 or the input stream ends.
func (m *Menu) Run() {
	for {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, "What do you want to do?")
		fmt.Fprintln(m.out, "[1] Print student list")
		fmt.Fprintln(m.out, "[2] Add student")
		fmt.Fprintln(m.out, "[3] Add grade")
		fmt.Fprintln(m.out, "[4] Delete student")
		fmt.Fprintln(m.out, "[0] Exit")

		choice, ok := m.prompt("Choice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			m.listStudents()
		case "2":
			m.addStudent()
		case "3":
			m.addGrade()
		case "4":
			m.deleteStudent()
		case "0":
			fmt.Fprintln(m.out, "Leaving the registry. Goodbye.")
			return
		default:
			fmt.Fprintln(m.out, "Invalid choice. Try again.")
		}
	}
}

// listStudents prints every record with its computed average,
// formatted to two decimals. The average itself is never rounded in
// storage — formatting is purely a display concern.
func (m *Menu) listStudents() {
	slog.Info("listing students")

	summaries, err := m.service.List()
	if err != nil {
		fmt.Fprintf(m.out, "Error: could not read the registry: %s\n", err)
		return
	}

	fmt.Fprintln(m.out, "\nStudent list:")
	for _, s := range summaries {
		fmt.Fprintf(m.out, "[%s] %s %s - grade average: %.2f\n",
			s.ID, s.FirstName, s.LastName, s.Average)
	}
}

// addStudent collects the new record interactively. The three
// identity fields are re-prompted until non-empty; the grade list is
// asked once and parsed leniently. When no grade conforms the whole
// operation is abandoned and nothing is saved.
func (m *Menu) addStudent() {
	slog.Info("adding a student")

	id, ok := m.promptNonEmpty("Matricola: ")
	if !ok {
		return
	}
	firstName, ok := m.promptNonEmpty("First name: ")
	if !ok {
		return
	}
	lastName, ok := m.promptNonEmpty("Last name: ")
	if !ok {
		return
	}
	rawGrades, ok := m.prompt("Enter grades separated by commas (e.g. 24,26,30): ")
	if !ok {
		return
	}

	student, err := m.service.AddStudent(id, firstName, lastName, rawGrades)
	if err != nil {
		if errors.Is(err, validation.ErrNoValidGrades) {
			fmt.Fprintln(m.out, "No valid grades entered (must be between 18 and 30). Student not added.")
			return
		}
		fmt.Fprintf(m.out, "Error: %s\n", err)
		return
	}

	slog.Info("student added", slog.String("matricola", student.ID))
	fmt.Fprintf(m.out, "\nStudent %s %s successfully added.\n",
		student.FirstName, student.LastName)
}

// addGrade asks for a matricola and a single grade, then appends it
// to the first matching record.
func (m *Menu) addGrade() {
	slog.Info("adding a grade")

	matricola, ok := m.prompt("Enter the matricola: ")
	if !ok {
		return
	}
	rawGrade, ok := m.prompt("Enter the new grade: ")
	if !ok {
		return
	}

	grade, err := m.service.AddGrade(matricola, rawGrade)
	switch {
	case errors.Is(err, validation.ErrInvalidGrade):
		fmt.Fprintln(m.out, "Error: the grade must be an integer between 18 and 30.")
		return
	case errors.Is(err, storage.ErrStudentNotFound):
		fmt.Fprintf(m.out, "Error: no student found with matricola %s\n",
			strings.TrimSpace(matricola))
		return
	case err != nil:
		fmt.Fprintf(m.out, "Error: %s\n", err)
		return
	}

	slog.Info("grade added",
		slog.String("matricola", strings.TrimSpace(matricola)),
		slog.Int("grade", grade))
	fmt.Fprintf(m.out, "Grade %d successfully added to %s.\n",
		grade, strings.TrimSpace(matricola))
}

// deleteStudent asks for a matricola, shows who would be removed, and
// asks for a yes/no confirmation before calling the operation. The
// confirmation lives here — the delete operation itself is
// unconditional once invoked.
func (m *Menu) deleteStudent() {
	slog.Info("deleting a student")

	// Nothing to delete, nothing to ask.
	summaries, err := m.service.List()
	if err != nil {
		fmt.Fprintf(m.out, "Error: could not read the registry: %s\n", err)
		return
	}
	if len(summaries) == 0 {
		fmt.Fprintln(m.out, "No students in the registry.")
		return
	}

	matricola, ok := m.prompt("Enter the matricola of the student to delete: ")
	if !ok {
		return
	}
	matricola = strings.TrimSpace(matricola)

	student, err := m.service.Find(matricola)
	if err != nil {
		if errors.Is(err, storage.ErrStudentNotFound) {
			fmt.Fprintf(m.out, "Error: no student found with matricola %s\n", matricola)
			return
		}
		fmt.Fprintf(m.out, "Error: %s\n", err)
		return
	}

	fullName := displayName(student.FirstName, student.LastName)
	answer, ok := m.prompt(fmt.Sprintf(
		"Are you sure you want to delete %s? (y/n): ", fullName))
	if !ok || strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Fprintln(m.out, "Operation cancelled.")
		return
	}

	err = m.service.DeleteStudent(matricola)
	switch {
	case errors.Is(err, storage.ErrEmptyRoster):
		fmt.Fprintln(m.out, "No students in the registry.")
		return
	case errors.Is(err, storage.ErrStudentNotFound):
		fmt.Fprintf(m.out, "Error: no student found with matricola %s\n", matricola)
		return
	case err != nil:
		fmt.Fprintf(m.out, "Error: %s\n", err)
		return
	}

	slog.Info("student deleted", slog.String("matricola", matricola))
	fmt.Fprintf(m.out, "Student %s successfully removed from the registry.\n", fullName)
}

// displayName renders a student's name for messages, substituting
// "N/A" for identity fields missing from hand-edited records.
func displayName(firstName, lastName string) string {
	if firstName == "" {
		firstName = "N/A"
	}
	if lastName == "" {
		lastName = "N/A"
	}
	return firstName + " " + lastName
}

// prompt prints the label and reads one line, trimmed. The second
// return value is false when the input stream has ended (Ctrl+D or a
// test script running out), which callers treat as "stop asking".
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// promptNonEmpty re-prompts until the operator types something that
// is non-empty after trimming.
func (m *Menu) promptNonEmpty(label string) (string, bool) {
	for {
		value, ok := m.prompt(label)
		if !ok {
			return "", false
		}
		if value != "" {
			return value, true
		}
		fmt.Fprintln(m.out, "This field cannot be empty. Try again.")
	}
}
