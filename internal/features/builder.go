package features

import (
	"fmt"
	"strconv"
	"strings"
)

// Form holds the raw values entered by the user.
type Form struct {
	Age        string
	Gender     string
	Income     string
	Education  string
	Marital    string
	Occupation string
}

// Applicant is a validated Form.
type Applicant struct {
	Age        int
	Gender     Gender
	Income     float64
	Education  Education
	Marital    MaritalStatus
	Occupation string
	// KnownOccupation is false when Occupation matched no schema column.
	KnownOccupation bool
}

// Columns names the schema column of each scalar form field.
type Columns struct {
	Age       string
	Gender    string
	Education string
	Marital   string
	Income    string
}

type slotKind uint8

const (
	slotAge slotKind = iota
	slotGender
	slotEducation
	slotMarital
	slotIncome
	slotOccupation
)

type slot struct {
	kind       slotKind
	occupation string
}

// Builder turns form values into the positional vector of a Schema.
type Builder struct {
	schema        *Schema
	encoding      *Encoding
	slots         []slot
	rejectUnknown bool
}

type Option func(*Builder)

// WithRejectUnknownOccupation makes Build fail with ErrUnknownOccupation
// instead of emitting an all-zero occupation encoding.
func WithRejectUnknownOccupation(reject bool) Option {
	return func(b *Builder) { b.rejectUnknown = reject }
}

// NewBuilder resolves every schema column to the form field that fills it.
// A column no field can fill is an error.
func NewBuilder(schema *Schema, encoding *Encoding, cols Columns, opts ...Option) (*Builder, error) {
	if schema == nil || encoding == nil {
		return nil, fmt.Errorf("schema and encoding are required")
	}

	byName := map[string]slotKind{
		cols.Age:       slotAge,
		cols.Gender:    slotGender,
		cols.Education: slotEducation,
		cols.Marital:   slotMarital,
		cols.Income:    slotIncome,
	}
	if len(byName) != 5 {
		return nil, fmt.Errorf("form field columns must be distinct: %+v", cols)
	}

	b := &Builder{schema: schema, encoding: encoding}
	for _, c := range schema.columns {
		if strings.HasPrefix(c, schema.prefix) {
			b.slots = append(b.slots, slot{kind: slotOccupation, occupation: strings.TrimPrefix(c, schema.prefix)})
			continue
		}
		kind, ok := byName[c]
		if !ok {
			return nil, fmt.Errorf("schema column %q is not filled by any form field", c)
		}
		b.slots = append(b.slots, slot{kind: kind})
	}

	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Builder) Schema() *Schema { return b.schema }

// Validate checks numeric fields first, then categorical fields.
func (b *Builder) Validate(f Form) (Applicant, error) {
	age, err := parseAge(f.Age)
	if err != nil {
		return Applicant{}, err
	}
	income, err := parseIncome(f.Income)
	if err != nil {
		return Applicant{}, err
	}

	gender, err := ParseGender(f.Gender)
	if err != nil {
		return Applicant{}, err
	}
	education, err := ParseEducation(f.Education)
	if err != nil {
		return Applicant{}, err
	}
	marital, err := ParseMaritalStatus(f.Marital)
	if err != nil {
		return Applicant{}, err
	}

	known := b.schema.HasOccupation(f.Occupation)
	if !known && b.rejectUnknown {
		return Applicant{}, fmt.Errorf("%w %q", ErrUnknownOccupation, f.Occupation)
	}

	return Applicant{
		Age:             age,
		Gender:          gender,
		Income:          income,
		Education:       education,
		Marital:         marital,
		Occupation:      f.Occupation,
		KnownOccupation: known,
	}, nil
}

// Encode lays a validated applicant out in schema order.
func (b *Builder) Encode(a Applicant) []float64 {
	vec := make([]float64, len(b.slots))
	for i, s := range b.slots {
		switch s.kind {
		case slotAge:
			vec[i] = float64(a.Age)
		case slotGender:
			vec[i] = b.encoding.Gender(a.Gender)
		case slotEducation:
			vec[i] = b.encoding.Education(a.Education)
		case slotMarital:
			vec[i] = b.encoding.Marital(a.Marital)
		case slotIncome:
			vec[i] = a.Income
		case slotOccupation:
			if s.occupation == a.Occupation {
				vec[i] = 1
			}
		}
	}
	return vec
}

// Build validates f and returns its feature vector.
func (b *Builder) Build(f Form) ([]float64, Applicant, error) {
	a, err := b.Validate(f)
	if err != nil {
		return nil, Applicant{}, err
	}
	return b.Encode(a), a, nil
}

func parseAge(s string) (int, error) {
	if !isDigits(s) {
		return 0, fmt.Errorf("%w: age %q", ErrInvalidNumeric, s)
	}
	age, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: age %q", ErrInvalidNumeric, s)
	}
	return age, nil
}

// parseIncome accepts digits with at most one decimal point.
func parseIncome(s string) (float64, error) {
	if !isDigits(strings.Replace(s, ".", "", 1)) {
		return 0, fmt.Errorf("%w: income %q", ErrInvalidNumeric, s)
	}
	income, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: income %q", ErrInvalidNumeric, s)
	}
	return income, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
