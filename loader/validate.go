package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/duelset/engine/typechart"
	"github.com/nathoo/duelset/types"
)

// ValidationError collects all roster errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("roster validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks roster-wide consistency. Unknown types and duplicate names
// are warnings: the chart treats unknown types as neutral and lookups resolve
// duplicates to the first entry.
func validate(cs []types.Creature, ve *ValidationError) {
	seen := map[string]bool{}
	for i, c := range cs {
		label := c.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		if c.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("creature %s has no name", label))
		}
		if c.Type1 == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("creature %q has no primary type", label))
		}
		for _, t := range c.Types() {
			if t != "" && !typechart.Known(t) {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"creature %q has unknown type %q (treated as neutral)", label, t))
			}
		}
		if c.Type1 != "" && c.Type1 == c.Type2 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"creature %q lists %s twice", label, c.Type1))
		}

		key := strings.ToLower(c.Name)
		if c.Name != "" && seen[key] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"duplicate creature name %q (lookups use the first)", c.Name))
		}
		seen[key] = true
	}

	if len(cs) == 0 {
		ve.Errors = append(ve.Errors, "roster is empty")
	}
}
