package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acolli/registro-studenti/internal/storage"
	"github.com/acolli/registro-studenti/internal/types"
)

func tempDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "registro.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Db.Close() })
	return db
}

func TestCreateAndGet(t *testing.T) {
	db := tempDB(t)

	require.NoError(t, db.CreateStudent(types.Student{
		ID: "S1", FirstName: "Ana", LastName: "Li", Grades: []any{20, 22},
	}))
	require.NoError(t, db.CreateStudent(types.Student{
		ID: "S2", FirstName: "José", LastName: "Müller", Grades: []any{30},
	}))

	students, err := db.GetStudents()
	require.NoError(t, err)
	require.Len(t, students, 2)

	// Insertion order, and the same JSON representation for voti as
	// the flat-file backend (so numbers come back as float64).
	assert.Equal(t, "S1", students[0].ID)
	assert.Equal(t, []any{20.0, 22.0}, students[0].Grades)
	assert.Equal(t, "José", students[1].FirstName)
}

func TestCreateWithNoGrades(t *testing.T) {
	db := tempDB(t)

	// nil and empty grade lists both round-trip as an empty slice:
	// the voti column always holds an array.
	require.NoError(t, db.CreateStudent(types.Student{
		ID: "S1", FirstName: "Ana", LastName: "Li", Grades: nil,
	}))
	require.NoError(t, db.CreateStudent(types.Student{
		ID: "S2", FirstName: "Bea", LastName: "Wu", Grades: []any{},
	}))

	students, err := db.GetStudents()
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, []any{}, students[0].Grades)
	assert.Equal(t, []any{}, students[1].Grades)
}

func TestGetStudentsEmpty(t *testing.T) {
	db := tempDB(t)

	students, err := db.GetStudents()
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestAddGrade(t *testing.T) {
	db := tempDB(t)

	require.NoError(t, db.CreateStudent(types.Student{
		ID: "S1", FirstName: "Ana", LastName: "Li", Grades: []any{20, 22},
	}))

	require.NoError(t, db.AddGrade("S1", 25))

	students, err := db.GetStudents()
	require.NoError(t, err)
	assert.Equal(t, []any{20.0, 22.0, 25.0}, students[0].Grades)

	assert.ErrorIs(t, db.AddGrade("S9", 25), storage.ErrStudentNotFound)
}

func TestAddGradeFirstMatchWins(t *testing.T) {
	db := tempDB(t)

	require.NoError(t, db.CreateStudent(types.Student{
		ID: "S1", FirstName: "Ana", LastName: "Li", Grades: []any{20},
	}))
	require.NoError(t, db.CreateStudent(types.Student{
		ID: "S1", FirstName: "Bea", LastName: "Wu", Grades: []any{30},
	}))

	require.NoError(t, db.AddGrade("S1", 22))

	students, err := db.GetStudents()
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, []any{20.0, 22.0}, students[0].Grades)
	assert.Equal(t, []any{30.0}, students[1].Grades)
}

func TestDeleteStudent(t *testing.T) {
	db := tempDB(t)

	assert.ErrorIs(t, db.DeleteStudent("S1"), storage.ErrEmptyRoster)

	require.NoError(t, db.CreateStudent(types.Student{
		ID: "S1", FirstName: "Ana", LastName: "Li", Grades: []any{20},
	}))
	require.NoError(t, db.CreateStudent(types.Student{
		ID: "S1", FirstName: "Bea", LastName: "Wu", Grades: []any{30},
	}))

	assert.ErrorIs(t, db.DeleteStudent("S9"), storage.ErrStudentNotFound)

	// First match goes, the duplicate further down stays.
	require.NoError(t, db.DeleteStudent("S1"))
	students, err := db.GetStudents()
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Bea", students[0].FirstName)

	require.NoError(t, db.DeleteStudent("S1"))
	students, err = db.GetStudents()
	require.NoError(t, err)
	assert.Empty(t, students)
}
