package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGradeList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int
	}{
		{"all valid", "24,26,30", []int{24, 26, 30}},
		{"whitespace tolerated", " 24 , 26 ,30 ", []int{24, 26, 30}},
		{"bad pieces dropped", "24, bad, 17, 31, 26", []int{24, 26}},
		{"boundaries inclusive", "18,30", []int{18, 30}},
		{"below range dropped", "17", nil},
		{"above range dropped", "31", nil},
		{"signed numbers are not digit-only", "+24,-20", nil},
		{"decimal numbers dropped", "24.5", nil},
		{"empty input", "", nil},
		{"only separators", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGradeList(tt.raw))
		})
	}
}

func TestParseGrade(t *testing.T) {
	got, err := ParseGrade(" 25 ")
	require.NoError(t, err)
	assert.Equal(t, 25, got)

	for _, raw := range []string{"17", "31", "abc", "", "24.5"} {
		_, err := ParseGrade(raw)
		assert.ErrorIs(t, err, ErrInvalidGrade, "input %q", raw)
	}
}

func TestFormatErrors(t *testing.T) {
	type form struct {
		ID        string `validate:"required"`
		FirstName string `validate:"required"`
	}

	err := validator.New().Struct(form{})
	require.Error(t, err)

	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	assert.Equal(t,
		"field ID is required, field FirstName is required",
		FormatErrors(verrs))
}
