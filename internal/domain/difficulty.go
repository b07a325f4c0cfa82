// Package domain defines the persistence models and value types for routes,
// climbers, and climbs. These types are mapped with GORM and form the core
// data layer of the crag application.
//
// Value types (DifficultyRating, Rating, Date) own their normalization and
// parsing rules; they can only be constructed through validating paths, so no
// out-of-range instance can reach the store or the wire.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrParseDifficultyRating is returned whenever a textual grade does not
// match one of the canonical difficulty labels. It is classified by the
// service layer as a parse failure, never masked by a default grade.
var ErrParseDifficultyRating = errors.New("failed to parse difficulty rating")

// DifficultyRating is an enumerated climbing grade. The zero value is invalid
// and is never produced by ParseDifficultyRating; it only exists so that a
// decoded struct with a missing difficulty field is detectable.
type DifficultyRating uint8

// Canonical grades, in ascending difficulty order.
const (
	Grade59 DifficultyRating = iota + 1
	Grade510
	Grade511
	Grade511Plus
	Grade512
)

// difficultyTable is the single source of truth for the grade <-> label
// mapping. Both lookup maps are derived from it, which guarantees the
// parse/display round-trip by construction.
var difficultyTable = [...]struct {
	grade DifficultyRating
	label string
}{
	{Grade59, "5.9"},
	{Grade510, "5.10"},
	{Grade511, "5.11"},
	{Grade511Plus, "5.11+"},
	{Grade512, "5.12"},
}

var (
	labelByGrade = make(map[DifficultyRating]string, len(difficultyTable))
	gradeByLabel = make(map[string]DifficultyRating, len(difficultyTable))
)

func init() {
	for _, e := range difficultyTable {
		labelByGrade[e.grade] = e.label
		gradeByLabel[e.label] = e.grade
	}
}

// ParseDifficultyRating resolves a canonical label ("5.9" … "5.12") to its
// grade. Matching is exact: no case folding, no fuzzy matching. Unrecognized
// labels return an error wrapping ErrParseDifficultyRating.
func ParseDifficultyRating(label string) (DifficultyRating, error) {
	if g, ok := gradeByLabel[label]; ok {
		return g, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrParseDifficultyRating, label)
}

// Valid reports whether d is one of the canonical grades.
func (d DifficultyRating) Valid() bool {
	_, ok := labelByGrade[d]
	return ok
}

// String returns the canonical label for d, the inverse of
// ParseDifficultyRating. An invalid grade yields the empty string.
func (d DifficultyRating) String() string { return labelByGrade[d] }

// MarshalJSON serializes the grade as its canonical label.
func (d DifficultyRating) MarshalJSON() ([]byte, error) {
	label, ok := labelByGrade[d]
	if !ok {
		return nil, fmt.Errorf("%w: invalid grade %d", ErrParseDifficultyRating, uint8(d))
	}
	return json.Marshal(label)
}

// UnmarshalJSON parses a JSON string holding a canonical label.
func (d *DifficultyRating) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("%w: expected a string label", ErrParseDifficultyRating)
	}
	g, err := ParseDifficultyRating(label)
	if err != nil {
		return err
	}
	*d = g
	return nil
}

// Value stores the grade as its textual label, keeping the column readable
// and the mapping reversible.
func (d DifficultyRating) Value() (driver.Value, error) {
	label, ok := labelByGrade[d]
	if !ok {
		return nil, fmt.Errorf("%w: invalid grade %d", ErrParseDifficultyRating, uint8(d))
	}
	return label, nil
}

// Scan parses a stored label back into a grade. A stored value that matches
// no canonical label is a parse failure, distinct from a missing row.
func (d *DifficultyRating) Scan(src any) error {
	var label string
	switch v := src.(type) {
	case string:
		label = v
	case []byte:
		label = string(v)
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrParseDifficultyRating, src)
	}
	g, err := ParseDifficultyRating(label)
	if err != nil {
		return err
	}
	*d = g
	return nil
}
