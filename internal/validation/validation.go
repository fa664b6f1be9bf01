// Package validation models user-input rules as an explicit set of
// validator kinds instead of convention-based sniffing. Each prompt owns
// one Validator value; the same value both rejects malformed input and
// extracts the typed result.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/subpair/habit-tracker/internal/utils"
)

// Kind selects which rule a Validator applies.
type Kind int

const (
	// KindChoice accepts exactly one of two options, case-insensitively.
	KindChoice Kind = iota
	// KindRange accepts an integer between Min and Max inclusive.
	KindRange
	// KindMaxLength accepts any text up to Max characters.
	KindMaxLength
	// KindAnyText accepts any non-empty text.
	KindAnyText
	// KindDate accepts a YYYY-MM-DD date.
	KindDate
)

// Validator is one input rule. Only the fields relevant to its Kind are
// set.
type Validator struct {
	Kind     Kind
	OptionA  string
	OptionB  string
	Min, Max int
}

func Choice(a, b string) Validator { return Validator{Kind: KindChoice, OptionA: a, OptionB: b} }
func Range(min, max int) Validator { return Validator{Kind: KindRange, Min: min, Max: max} }
func MaxLength(max int) Validator  { return Validator{Kind: KindMaxLength, Max: max} }
func AnyText() Validator           { return Validator{Kind: KindAnyText} }
func Date() Validator              { return Validator{Kind: KindDate} }
func YesNo() Validator             { return Choice("y", "n") }

// Validate reports why the input is not acceptable for this rule, or nil.
// The signature matches what huh inputs expect.
func (v Validator) Validate(input string) error {
	input = strings.TrimSpace(input)

	switch v.Kind {
	case KindChoice:
		if !strings.EqualFold(input, v.OptionA) && !strings.EqualFold(input, v.OptionB) {
			return fmt.Errorf("enter [%s] or [%s]", v.OptionA, v.OptionB)
		}
	case KindRange:
		n, err := strconv.Atoi(input)
		if err != nil {
			return fmt.Errorf("enter a number between %d and %d", v.Min, v.Max)
		}
		if n < v.Min || n > v.Max {
			return fmt.Errorf("number must be between %d and %d", v.Min, v.Max)
		}
	case KindMaxLength:
		if input == "" {
			return fmt.Errorf("enter at least one character")
		}
		if len(input) > v.Max {
			return fmt.Errorf("text must be at most %d characters", v.Max)
		}
	case KindAnyText:
		if input == "" {
			return fmt.Errorf("enter at least one character")
		}
	case KindDate:
		if !utils.ValidDate(input) {
			return fmt.Errorf("enter a valid date in the form YYYY-MM-DD")
		}
	}
	return nil
}

// Bool extracts a choice result: true when the input matches OptionA.
// Validate must have accepted the input first.
func (v Validator) Bool(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), v.OptionA)
}

// Int extracts a validated range result.
func (v Validator) Int(input string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(input))
	return n
}

// Date extracts a validated date result.
func (v Validator) Date(input string) time.Time {
	d, _ := utils.ParseDate(strings.TrimSpace(input))
	return d
}
