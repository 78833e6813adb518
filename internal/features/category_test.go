package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategories(t *testing.T) {
	g, err := ParseGender("Female")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	e, err := ParseEducation("High School")
	require.NoError(t, err)
	assert.Equal(t, EducationHighSchool, e)

	m, err := ParseMaritalStatus("Married")
	require.NoError(t, err)
	assert.Equal(t, MaritalMarried, m)

	_, err = ParseGender("Other")
	assert.ErrorIs(t, err, ErrInvalidCategorical)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"Female", "Male"}, Labels(Genders()))
	assert.Equal(t, []string{"Bachelor", "Master", "High School", "Associate", "Doctoral"}, Labels(EducationLevels()))
	assert.Equal(t, []string{"Single", "Married"}, Labels(MaritalStatuses()))
	assert.Equal(t, "unknown(0)", Gender(0).String())
}

func TestEncoding_Codes(t *testing.T) {
	enc := defaultEncoding(t)

	assert.Equal(t, 1.0, enc.Gender(GenderMale))
	assert.Equal(t, 2.0, enc.Education(EducationHighSchool))
	assert.Equal(t, 4.0, enc.Education(EducationDoctoral))
	assert.Equal(t, 0.0, enc.Marital(MaritalSingle))
}

func TestNewEncoding_Errors(t *testing.T) {
	full := map[string]int{"Female": 0, "Male": 1}
	education := map[string]int{"Bachelor": 0, "Master": 1, "High School": 2, "Associate": 3, "Doctoral": 4}
	marital := map[string]int{"Single": 0, "Married": 1}

	t.Run("missing value", func(t *testing.T) {
		_, err := NewEncoding(map[string]int{"Female": 0}, education, marital)
		assert.ErrorContains(t, err, "missing code for Male")
	})

	t.Run("unknown label", func(t *testing.T) {
		_, err := NewEncoding(full, education, map[string]int{"Single": 0, "Married": 1, "Widowed": 2})
		assert.ErrorIs(t, err, ErrInvalidCategorical)
	})
}
