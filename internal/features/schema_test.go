package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	schema, err := NewSchema(trainingColumns, "occupation_", []string{"credit_score", "not_present"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Engineer", "Teacher", "Doctor"}, schema.Occupations())
	assert.Equal(t, []string{"credit_score"}, schema.Dropped())
	assert.Equal(t, len(trainingColumns)-1, schema.Len())
	assert.Equal(t, trainingColumns[:len(trainingColumns)-1], schema.Columns())
	assert.True(t, schema.HasOccupation("Doctor"))
	assert.False(t, schema.HasOccupation("doctor"))
}

func TestNewSchema_ReturnsCopies(t *testing.T) {
	schema, err := NewSchema(trainingColumns, "occupation_", nil)
	require.NoError(t, err)

	cols := schema.Columns()
	cols[0] = "mutated"
	occ := schema.Occupations()
	occ[0] = "mutated"

	assert.Equal(t, "age", schema.Columns()[0])
	assert.Equal(t, "Engineer", schema.Occupations()[0])
}

func TestNewSchema_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		columns []string
		prefix  string
		drop    []string
	}{
		{"empty schema", nil, "occupation_", nil},
		{"empty prefix", trainingColumns, "", nil},
		{"duplicate column", []string{"age", "age", "occupation_A"}, "occupation_", nil},
		{"empty column", []string{"age", "", "occupation_A"}, "occupation_", nil},
		{"no occupation columns", []string{"age", "income"}, "occupation_", nil},
		{"bare prefix column", []string{"age", "occupation_"}, "occupation_", nil},
		{"dropping an occupation column", trainingColumns, "occupation_", []string{"occupation_Doctor"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSchema(tc.columns, tc.prefix, tc.drop)
			assert.Error(t, err)
		})
	}
}
