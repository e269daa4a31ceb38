package validation

import "strings"

// RuleSet is an ordered list of named constraints that renders to the
// pipe syntax understood by Make.
//
//	rs := validation.NewRuleSet().Add("required").Add("min", "5")
//	rs.String() // "required|min:5"
type RuleSet struct {
	rules []rule
}

type rule struct {
	name   string
	params []string
}

func (r rule) String() string {
	if len(r.params) == 0 {
		return r.name
	}
	return r.name + ":" + strings.ReplaceAll(strings.Join(r.params, ","), "|", "||")
}

// SplitRules splits a pipe-separated rule string. A doubled "||" stands for
// a literal pipe inside a rule, so "regex:^(a||b)$|required" holds the
// pattern ^(a|b)$ followed by required.
func SplitRules(expr string) []string {
	var (
		parts []string
		b     strings.Builder
	)
	for i := 0; i < len(expr); i++ {
		if expr[i] != '|' {
			b.WriteByte(expr[i])
			continue
		}
		if i+1 < len(expr) && expr[i+1] == '|' {
			b.WriteByte('|')
			i++
			continue
		}
		parts = append(parts, b.String())
		b.Reset()
	}
	return append(parts, b.String())
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet { return &RuleSet{} }

// ParseRuleSet builds a rule set from "required|in:a,b". Pipes inside a
// rule are written "||", see SplitRules.
func ParseRuleSet(expr string) *RuleSet {
	rs := NewRuleSet()
	for _, part := range SplitRules(expr) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, param, ok := strings.Cut(part, ":")
		if !ok {
			rs.Add(name)
			continue
		}
		// regex patterns may contain commas
		if name == "regex" {
			rs.Add(name, param)
			continue
		}
		rs.Add(name, strings.Split(param, ",")...)
	}
	return rs
}

// Add appends a constraint.
func (rs *RuleSet) Add(name string, params ...string) *RuleSet {
	rs.rules = append(rs.rules, rule{name: name, params: params})
	return rs
}

// Has reports whether a constraint with this name was added.
func (rs *RuleSet) Has(name string) bool {
	for _, r := range rs.rules {
		if r.name == name {
			return true
		}
	}
	return false
}

// Len returns the number of constraints.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Names returns the constraint names in order.
func (rs *RuleSet) Names() []string {
	names := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		names[i] = r.name
	}
	return names
}

// String renders the pipe syntax read by Make. Pipes in parameters are
// doubled.
func (rs *RuleSet) String() string {
	parts := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		parts[i] = r.String()
	}
	return strings.Join(parts, "|")
}

// Each calls fn for every constraint in order.
func (rs *RuleSet) Each(fn func(name string, params ...string)) {
	for _, r := range rs.rules {
		fn(r.name, r.params...)
	}
}
