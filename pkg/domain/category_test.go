package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"alumni", CategoryAlumni},
		{"AL", CategoryAlumni},
		{"  Faculty ", CategoryFaculty},
		{"fl", CategoryFaculty},
		{"volunteer", CategoryVolunteer},
		{"vl", CategoryVolunteer},
		{"student", CategoryStudent},
		{"STU", CategoryStudent},
		{"press", CategoryPress},
		{"pr", CategoryPress},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategoryRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "guest", "alum", "XX"} {
		_, err := ParseCategory(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestCategoryPrefix(t *testing.T) {
	assert.Equal(t, "AL", CategoryAlumni.Prefix())
	assert.Equal(t, "FL", CategoryFaculty.Prefix())
	assert.Equal(t, "VL", CategoryVolunteer.Prefix())
	assert.Equal(t, "STU", CategoryStudent.Prefix())
	assert.Equal(t, "PR", CategoryPress.Prefix())
}

func TestCategoryFromScanPrefix(t *testing.T) {
	t.Run("recognizes known prefixes", func(t *testing.T) {
		assert.Equal(t, CategoryAlumni, CategoryFromScanPrefix("AL-20260001"))
		assert.Equal(t, CategoryStudent, CategoryFromScanPrefix("stu-777"))
	})

	t.Run("empty for unknown or unprefixed codes", func(t *testing.T) {
		assert.Empty(t, CategoryFromScanPrefix("ZZ-123"))
		assert.Empty(t, CategoryFromScanPrefix("plaincode"))
		assert.Empty(t, CategoryFromScanPrefix(""))
	})
}
