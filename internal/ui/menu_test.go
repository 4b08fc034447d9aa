package ui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acolli/registro-studenti/internal/roster"
	"github.com/acolli/registro-studenti/internal/storage/jsonfile"
)

// runSession feeds a scripted sequence of input lines to a fresh menu
// backed by a JSON file in a temp dir, and returns everything the menu
// printed plus the service for follow-up assertions.
func runSession(t *testing.T, lines ...string) (string, *roster.Service) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "registro.json")
	svc := roster.New(jsonfile.New(path))

	var out bytes.Buffer
	menu := New(svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	menu.Run()

	return out.String(), svc
}

func TestFullSession(t *testing.T) {
	out, svc := runSession(t,
		"2", // add student
		"S1",
		"", // empty first name: re-prompted
		"Ana",
		"Li",
		"20,22",
		"1", // list
		"3", // add grade
		"S1",
		"25",
		"x", // invalid menu choice
		"4", // delete, confirmed
		"S1",
		"y",
		"1", // list again: empty now
		"0", // exit
	)

	assert.Contains(t, out, "This field cannot be empty. Try again.")
	assert.Contains(t, out, "Student Ana Li successfully added.")
	assert.Contains(t, out, "[S1] Ana Li - grade average: 21.00")
	assert.Contains(t, out, "Grade 25 successfully added to S1.")
	assert.Contains(t, out, "Invalid choice. Try again.")
	assert.Contains(t, out, "Are you sure you want to delete Ana Li? (y/n):")
	assert.Contains(t, out, "Student Ana Li successfully removed from the registry.")
	assert.Contains(t, out, "Leaving the registry. Goodbye.")

	summaries, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestAverageShownWithTwoDecimals(t *testing.T) {
	out, _ := runSession(t,
		"2", "S1", "Ana", "Li", "20,22,25",
		"1",
		"0",
	)

	// (20+22+25)/3 = 22.333... rendered as 22.33.
	assert.Contains(t, out, "[S1] Ana Li - grade average: 22.33")
}

func TestAddStudentNoValidGrades(t *testing.T) {
	out, svc := runSession(t,
		"2", "S1", "Ana", "Li", "17, 31, bad",
		"0",
	)

	assert.Contains(t, out,
		"No valid grades entered (must be between 18 and 30). Student not added.")

	summaries, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestAddGradeErrors(t *testing.T) {
	out, _ := runSession(t,
		"2", "S1", "Ana", "Li", "20",
		"3", "S9", "25", // no such student
		"3", "S1", "31", // out of range
		"0",
	)

	assert.Contains(t, out, "Error: no student found with matricola S9")
	assert.Contains(t, out, "Error: the grade must be an integer between 18 and 30.")
}

func TestDeleteCancelled(t *testing.T) {
	out, svc := runSession(t,
		"2", "S1", "Ana", "Li", "20",
		"4", "S1", "n",
		"0",
	)

	assert.Contains(t, out, "Operation cancelled.")

	summaries, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestDeleteOnEmptyRegistry(t *testing.T) {
	out, _ := runSession(t,
		"4",
		"0",
	)

	assert.Contains(t, out, "No students in the registry.")
}

func TestEndOfInputStopsLoop(t *testing.T) {
	// The script runs out mid-prompt; Run must return instead of
	// spinning on a closed stream.
	out, _ := runSession(t,
		"2",
		"S1",
	)

	assert.Contains(t, out, "First name: ")
}
