package preview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataset(rows int) string {
	var b strings.Builder
	b.WriteString("age,gender,occupation,education_level,marital_status,income,credit_score,loan_status\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%d,Male,Engineer,Bachelor,Single,%d,700,Approved\n", 20+i%40, 40000+i)
	}
	return b.String()
}

func TestRead_FixedMaximum(t *testing.T) {
	testCases := []struct {
		name     string
		rows     int
		maxRows  int
		expected int
	}{
		{"larger dataset is truncated", 100, 30, 30},
		{"smaller dataset is shown whole", 5, 30, 5},
		{"header only", 0, 30, 0},
		{"exact fit", 30, 30, 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := Read(strings.NewReader(dataset(tc.rows)), tc.maxRows)
			require.NoError(t, err)
			assert.Len(t, table.Rows, tc.expected)
			assert.Equal(t, "age", table.Header[0])
		})
	}
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader(""), 30)
	assert.ErrorContains(t, err, "empty")

	_, err = Read(strings.NewReader(dataset(3)), 0)
	assert.Error(t, err)

	_, err = Read(strings.NewReader(dataset(3)), 5000)
	assert.Error(t, err)

	_, err = Read(strings.NewReader("a,b\n\"unterminated,1\n"), 30)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loan.csv")
	require.NoError(t, os.WriteFile(path, []byte(dataset(50)), 0o600))

	table, err := Load(path, 30)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 30)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"), 30)
	assert.Error(t, err)
}

func TestRender_Aligned(t *testing.T) {
	table := &Table{
		Header: []string{"age", "occupation"},
		Rows: [][]string{
			{"30", "Engineer"},
			{"41", "Doctor"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table, false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "age | occupation", lines[0])
	assert.Equal(t, "----+-----------", lines[1])
	assert.Equal(t, "30  | Engineer  ", lines[2])
	assert.Equal(t, "41  | Doctor    ", lines[3])
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRender_StripesOddRows(t *testing.T) {
	table := &Table{
		Header: []string{"n"},
		Rows:   [][]string{{"0"}, {"1"}, {"2"}, {"3"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table, true))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "0", lines[2])
	assert.Equal(t, stripeOn+"1"+stripeOff, lines[3])
	assert.Equal(t, "2", lines[4])
	assert.Equal(t, stripeOn+"3"+stripeOff, lines[5])
}

func TestRender_RaggedRows(t *testing.T) {
	table := &Table{
		Header: []string{"a"},
		Rows:   [][]string{{"1", "extra"}, {}},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table, false))
	assert.Contains(t, buf.String(), "1 | extra")
}
