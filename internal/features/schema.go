package features

import (
	"fmt"
	"strings"
)

// Schema is the ordered column layout a trained model consumes. The model has
// no notion of column names at inference time, so vectors must follow this
// order exactly.
type Schema struct {
	columns     []string
	occupations []string
	dropped     []string
	prefix      string
}

// NewSchema derives the occupation categories from columns named
// prefix+category and removes the drop columns from the positional layout.
func NewSchema(columns []string, prefix string, drop []string) (*Schema, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("feature schema is empty")
	}
	if prefix == "" {
		return nil, fmt.Errorf("occupation prefix cannot be empty")
	}

	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if c == "" {
			return nil, fmt.Errorf("feature schema contains an empty column name")
		}
		if _, ok := seen[c]; ok {
			return nil, fmt.Errorf("feature schema contains duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}

	dropSet := make(map[string]struct{}, len(drop))
	for _, d := range drop {
		if strings.HasPrefix(d, prefix) {
			return nil, fmt.Errorf("cannot drop occupation column %q", d)
		}
		dropSet[d] = struct{}{}
	}

	s := &Schema{prefix: prefix}
	for _, c := range columns {
		if _, ok := dropSet[c]; ok {
			s.dropped = append(s.dropped, c)
			continue
		}
		if strings.HasPrefix(c, prefix) {
			name := strings.TrimPrefix(c, prefix)
			if name == "" {
				return nil, fmt.Errorf("occupation column %q has no category name", c)
			}
			s.occupations = append(s.occupations, name)
		}
		s.columns = append(s.columns, c)
	}

	if len(s.occupations) == 0 {
		return nil, fmt.Errorf("feature schema has no %q columns", prefix)
	}

	return s, nil
}

// Columns returns the model's column order.
func (s *Schema) Columns() []string { return append([]string(nil), s.columns...) }

// Len is the length every feature vector must have.
func (s *Schema) Len() int { return len(s.columns) }

// Occupations returns the occupation categories in schema order.
func (s *Schema) Occupations() []string { return append([]string(nil), s.occupations...) }

// Dropped returns the columns removed from the layout.
func (s *Schema) Dropped() []string { return append([]string(nil), s.dropped...) }

func (s *Schema) Prefix() string { return s.prefix }

// HasOccupation reports whether name is one of the schema's occupation categories.
func (s *Schema) HasOccupation(name string) bool {
	for _, o := range s.occupations {
		if o == name {
			return true
		}
	}
	return false
}
