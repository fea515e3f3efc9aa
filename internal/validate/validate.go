// Package validate evaluates a single input value against declarative
// constraints such as required, length and numeric bounds.
package validate

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Rule names a single constraint check.
type Rule string

// Constraint rules, in evaluation order.
const (
	RuleRequired  Rule = "required"
	RuleMinLength Rule = "min_length"
	RuleMaxLength Rule = "max_length"
	RuleMin       Rule = "min"
	RuleMax       Rule = "max"
)

// Field describes one value and the rules it must satisfy.
// Nil constraint pointers impose no restriction.
type Field struct {
	Value     any
	Required  bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
}

// Violation records a rule that a field failed.
type Violation struct {
	Rule  Rule
	Limit string
}

func (v Violation) String() string {
	if v.Limit == "" {
		return string(v.Rule)
	}
	return fmt.Sprintf("%s %s", v.Rule, v.Limit)
}

// Int returns a pointer to n, for use as a length constraint.
func Int(n int) *int { return &n }

// Float returns a pointer to x, for use as a numeric bound.
func Float(x float64) *float64 { return &x }

// Validate reports whether f satisfies every constraint it declares.
func Validate(f Field) bool {
	return len(Check(f)) == 0
}

// Outcome is the result of one applicable rule.
type Outcome struct {
	Violation
	Passed bool
}

// Check returns the constraints f fails, in rule order.
func Check(f Field) []Violation {
	var out []Violation
	for _, o := range Explain(f) {
		if !o.Passed {
			out = append(out, o.Violation)
		}
	}
	return out
}

// Explain evaluates every rule that applies to f, in rule order.
//
// Required is evaluated against the rendered form of the value, so a numeric
// zero counts as present. Length rules only apply to string values and
// numeric bounds only to numbers; NaN fails any bound it is checked against.
func Explain(f Field) []Outcome {
	var out []Outcome
	add := func(rule Rule, limit string, passed bool) {
		out = append(out, Outcome{Violation: Violation{Rule: rule, Limit: limit}, Passed: passed})
	}

	if f.Required {
		add(RuleRequired, "", strings.TrimSpace(render(f.Value)) != "")
	}

	if s, ok := f.Value.(string); ok {
		n := utf8.RuneCountInString(s)
		if f.MinLength != nil {
			add(RuleMinLength, fmt.Sprint(*f.MinLength), n >= *f.MinLength)
		}
		if f.MaxLength != nil {
			add(RuleMaxLength, fmt.Sprint(*f.MaxLength), n <= *f.MaxLength)
		}
	}

	if x, ok := number(f.Value); ok {
		nan := math.IsNaN(x)
		if f.Min != nil {
			add(RuleMin, formatBound(*f.Min), !nan && x >= *f.Min)
		}
		if f.Max != nil {
			add(RuleMax, formatBound(*f.Max), !nan && x <= *f.Max)
		}
	}

	return out
}

func render(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// number converts the numeric kinds a caller may reasonably pass.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func formatBound(x float64) string {
	if x == math.Trunc(x) && !math.IsInf(x, 0) {
		return fmt.Sprintf("%d", int64(x))
	}
	return fmt.Sprint(x)
}
