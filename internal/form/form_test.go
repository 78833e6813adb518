package form

import (
	"bytes"
	"strings"
	"testing"

	"loan-approval/internal/approval"
	"loan-approval/internal/common"
	"loan-approval/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedEvaluator approves incomes of 50000 and above, rejects bad ages.
type scriptedEvaluator struct {
	seen []features.Form
}

func (e *scriptedEvaluator) Evaluate(f features.Form) approval.Verdict {
	e.seen = append(e.seen, f)
	switch {
	case f.Age == "abc":
		return approval.Verdict{Status: approval.StatusInvalidNumeric, Message: common.MsgInvalidNumeric}
	case f.Income >= "50000":
		return approval.Verdict{Status: approval.StatusApproved, Message: common.MsgApproved}
	default:
		return approval.Verdict{Status: approval.StatusDenied, Message: common.MsgDenied}
	}
}

func lines(values ...string) string {
	return strings.Join(values, "\n") + "\n"
}

func TestSession_SingleSubmission(t *testing.T) {
	eval := &scriptedEvaluator{}
	var out bytes.Buffer

	in := lines("30", "Male", "50000", "Bachelor", "Single", "Engineer")
	s := NewSession(strings.NewReader(in), &out, eval, []string{"Engineer", "Teacher"})
	require.NoError(t, s.Run())

	require.Len(t, eval.seen, 1)
	assert.Equal(t, features.Form{
		Age: "30", Gender: "Male", Income: "50000",
		Education: "Bachelor", Marital: "Single", Occupation: "Engineer",
	}, eval.seen[0])
	assert.Contains(t, out.String(), ">> Loan Approved")
	assert.Contains(t, out.String(), "Occupation [Engineer, Teacher]: ")
	assert.Contains(t, out.String(), "Gender [Female, Male]: ")
	assert.Contains(t, out.String(), "Education [Bachelor, Master, High School, Associate, Doctoral]: ")
}

func TestSession_ResubmitAfterError(t *testing.T) {
	eval := &scriptedEvaluator{}
	var out bytes.Buffer

	in := lines(
		"abc", "Male", "50000", "Bachelor", "Single", "Engineer",
		"30", "Male", "50000", "Bachelor", "Single", "Engineer",
	)
	require.NoError(t, NewSession(strings.NewReader(in), &out, eval, nil).Run())

	require.Len(t, eval.seen, 2)
	text := out.String()
	errAt := strings.Index(text, ">> "+common.MsgInvalidNumeric)
	okAt := strings.Index(text, ">> "+common.MsgApproved)
	require.NotEqual(t, -1, errAt)
	require.NotEqual(t, -1, okAt)
	assert.Less(t, errAt, okAt)
}

func TestSession_TrimsInput(t *testing.T) {
	eval := &scriptedEvaluator{}
	in := lines("  30 ", "Male\r", "100", "Master", "Married", " Teacher")
	require.NoError(t, NewSession(strings.NewReader(in), &bytes.Buffer{}, eval, nil).Run())

	require.Len(t, eval.seen, 1)
	assert.Equal(t, "30", eval.seen[0].Age)
	assert.Equal(t, "Male", eval.seen[0].Gender)
	assert.Equal(t, "Teacher", eval.seen[0].Occupation)
}

func TestSession_Quit(t *testing.T) {
	eval := &scriptedEvaluator{}
	in := lines("30", "QUIT", "50000")
	require.NoError(t, NewSession(strings.NewReader(in), &bytes.Buffer{}, eval, nil).Run())
	assert.Empty(t, eval.seen)
}

func TestSession_EOFMidForm(t *testing.T) {
	eval := &scriptedEvaluator{}
	require.NoError(t, NewSession(strings.NewReader("30\nMale"), &bytes.Buffer{}, eval, nil).Run())
	assert.Empty(t, eval.seen, "partial submissions are discarded")
}
