// Package form runs the interactive loan application prompt in a terminal.
package form

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"loan-approval/internal/approval"
	"loan-approval/internal/features"

	"github.com/rs/zerolog/log"
)

const quitCommand = "quit"

var errQuit = errors.New("quit")

// Evaluator turns one submission into a verdict.
type Evaluator interface {
	Evaluate(features.Form) approval.Verdict
}

type field struct {
	label   string
	choices []string
	set     func(*features.Form, string)
}

// Session is one interactive form. It reads from a single goroutine and
// keeps no state between submissions.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	eval   Evaluator
	fields []field
}

func NewSession(in io.Reader, out io.Writer, eval Evaluator, occupations []string) *Session {
	return &Session{
		in:   bufio.NewScanner(in),
		out:  out,
		eval: eval,
		fields: []field{
			{label: "Age", set: func(f *features.Form, v string) { f.Age = v }},
			{label: "Gender", choices: features.Labels(features.Genders()), set: func(f *features.Form, v string) { f.Gender = v }},
			{label: "Income", set: func(f *features.Form, v string) { f.Income = v }},
			{label: "Education", choices: features.Labels(features.EducationLevels()), set: func(f *features.Form, v string) { f.Education = v }},
			{label: "Marital Status", choices: features.Labels(features.MaritalStatuses()), set: func(f *features.Form, v string) { f.Marital = v }},
			{label: "Occupation", choices: occupations, set: func(f *features.Form, v string) { f.Occupation = v }},
		},
	}
}

// Run prompts for applications until the input ends or the user types quit.
func (s *Session) Run() error {
	fmt.Fprintf(s.out, "Enter applicant details. Type %q at any prompt to exit.\n", quitCommand)

	for n := 1; ; n++ {
		fmt.Fprintf(s.out, "\nApplication #%d\n", n)

		submission, err := s.read()
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			log.Debug().Int("submissions", n-1).Msg("Form session ended")
			return nil
		}
		if err != nil {
			return err
		}

		v := s.eval.Evaluate(submission)
		fmt.Fprintf(s.out, ">> %s\n", v.Message)
	}
}

func (s *Session) read() (features.Form, error) {
	var submission features.Form
	for _, fl := range s.fields {
		if len(fl.choices) > 0 {
			fmt.Fprintf(s.out, "%s [%s]: ", fl.label, strings.Join(fl.choices, ", "))
		} else {
			fmt.Fprintf(s.out, "%s: ", fl.label)
		}

		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return features.Form{}, fmt.Errorf("read input: %w", err)
			}
			fmt.Fprintln(s.out)
			return features.Form{}, io.EOF
		}

		value := strings.TrimSpace(s.in.Text())
		if strings.EqualFold(value, quitCommand) {
			return features.Form{}, errQuit
		}
		fl.set(&submission, value)
	}
	return submission, nil
}
