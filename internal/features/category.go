package features

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidNumeric is returned when age or income is not a non-negative number.
	ErrInvalidNumeric = errors.New("invalid numeric input")
	// ErrInvalidCategorical is returned when a categorical label is outside its enumeration.
	ErrInvalidCategorical = errors.New("invalid categorical input")
	// ErrUnknownOccupation is a categorical error raised only when unknown occupations are rejected.
	ErrUnknownOccupation = fmt.Errorf("%w: unknown occupation", ErrInvalidCategorical)
)

type Gender uint8

const (
	GenderFemale Gender = iota + 1
	GenderMale
)

var genderLabels = []string{"Female", "Male"}

func (g Gender) String() string { return label(genderLabels, uint8(g)) }

// Genders lists every gender in form order.
func Genders() []Gender { return []Gender{GenderFemale, GenderMale} }

func ParseGender(s string) (Gender, error) {
	v, err := parseLabel("gender", genderLabels, s)
	return Gender(v), err
}

type Education uint8

const (
	EducationBachelor Education = iota + 1
	EducationMaster
	EducationHighSchool
	EducationAssociate
	EducationDoctoral
)

var educationLabels = []string{"Bachelor", "Master", "High School", "Associate", "Doctoral"}

func (e Education) String() string { return label(educationLabels, uint8(e)) }

// EducationLevels lists every education level in form order.
func EducationLevels() []Education {
	return []Education{EducationBachelor, EducationMaster, EducationHighSchool, EducationAssociate, EducationDoctoral}
}

func ParseEducation(s string) (Education, error) {
	v, err := parseLabel("education level", educationLabels, s)
	return Education(v), err
}

type MaritalStatus uint8

const (
	MaritalSingle MaritalStatus = iota + 1
	MaritalMarried
)

var maritalLabels = []string{"Single", "Married"}

func (m MaritalStatus) String() string { return label(maritalLabels, uint8(m)) }

// MaritalStatuses lists every marital status in form order.
func MaritalStatuses() []MaritalStatus { return []MaritalStatus{MaritalSingle, MaritalMarried} }

func ParseMaritalStatus(s string) (MaritalStatus, error) {
	v, err := parseLabel("marital status", maritalLabels, s)
	return MaritalStatus(v), err
}

// Labels returns the form labels of an enumeration in order.
func Labels[T fmt.Stringer](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func label(labels []string, v uint8) string {
	if v == 0 || int(v) > len(labels) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return labels[v-1]
}

func parseLabel(field string, labels []string, s string) (uint8, error) {
	for i, l := range labels {
		if l == s {
			return uint8(i + 1), nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrInvalidCategorical, field, s)
}

// Encoding holds the training-time integer code of every enumerated category.
type Encoding struct {
	gender    map[Gender]float64
	education map[Education]float64
	marital   map[MaritalStatus]float64
}

// NewEncoding builds an Encoding from label->code maps. Every enumerated value
// must have a code and every label must belong to its enumeration.
func NewEncoding(gender, education, marital map[string]int) (*Encoding, error) {
	g, err := codeTable("gender", gender, ParseGender, Genders())
	if err != nil {
		return nil, err
	}
	e, err := codeTable("education", education, ParseEducation, EducationLevels())
	if err != nil {
		return nil, err
	}
	m, err := codeTable("marital", marital, ParseMaritalStatus, MaritalStatuses())
	if err != nil {
		return nil, err
	}
	return &Encoding{gender: g, education: e, marital: m}, nil
}

func (e *Encoding) Gender(g Gender) float64 { return e.gender[g] }
func (e *Encoding) Education(v Education) float64 { return e.education[v] }
func (e *Encoding) Marital(m MaritalStatus) float64 { return e.marital[m] }

func codeTable[T comparable](field string, codes map[string]int, parse func(string) (T, error), all []T) (map[T]float64, error) {
	table := make(map[T]float64, len(all))

	labels := make([]string, 0, len(codes))
	for l := range codes {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	for _, l := range labels {
		v, err := parse(l)
		if err != nil {
			return nil, fmt.Errorf("%s encoding: %w", field, err)
		}
		table[v] = float64(codes[l])
	}
	for _, v := range all {
		if _, ok := table[v]; !ok {
			return nil, fmt.Errorf("%s encoding: missing code for %v", field, v)
		}
	}
	return table, nil
}
