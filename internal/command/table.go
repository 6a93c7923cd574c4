// Package command selects and runs shell commands keyed by the signed offset
// from a sun event. The rule table comes from configuration; execution goes
// through the Runner capability so tests never touch a real shell.
package command

import "fmt"

// Rule binds a value range to a shell command. Bounds are inclusive; a nil
// bound leaves that side open. A rule with both bounds nil matches every
// value.
type Rule struct {
	Min *float64 `koanf:"min" yaml:"min,omitempty"`
	Max *float64 `koanf:"max" yaml:"max,omitempty"`
	Run string   `koanf:"run" yaml:"run"`
}

// Matches reports whether v falls inside the rule's range.
func (r Rule) Matches(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Validate rejects rules that could never be meaningful.
func (r Rule) Validate() error {
	if r.Run == "" {
		return fmt.Errorf("rule has empty run command")
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return fmt.Errorf("rule %q has min %v greater than max %v", r.Run, *r.Min, *r.Max)
	}
	return nil
}

// Table is an ordered list of rules.
type Table []Rule

// Select returns the commands of every rule matching v, preserving table
// order. Multiple matches are all returned; no match yields an empty slice,
// which is a normal outcome rather than an error.
func (t Table) Select(v float64) []string {
	var out []string
	for _, r := range t {
		if r.Matches(v) {
			out = append(out, r.Run)
		}
	}
	return out
}

// Validate checks every rule in the table.
func (t Table) Validate() error {
	for i, r := range t {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}
