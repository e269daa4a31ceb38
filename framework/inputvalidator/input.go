package inputvalidator

import (
	"strconv"

	"github.com/km-arc/go-laravel-input/framework/http/validation"
)

// ConfirmationSuffix names the sibling field registered by Confirmed.
const ConfirmationSuffix = "_confirmation"

// Input is one field's validation contract. Inputs are created by
// Validator.Add and configured during DefineInput.
type Input struct {
	name        string
	rules       *validation.RuleSet
	hidden      bool
	updatable   bool
	failMessage string
	hasMessage  bool

	// set by the owning Validator
	sibling func(name string) *Input
	lookup  func(in *Input) (string, bool)
}

func newInput(name string, sibling func(string) *Input, lookup func(*Input) (string, bool)) *Input {
	return &Input{
		name:      name,
		rules:     validation.NewRuleSet(),
		updatable: true,
		sibling:   sibling,
		lookup:    lookup,
	}
}

// ── Flags ────────────────────────────────────────────────────────────────────

// Hidden keeps the field out of flashed input. It is still validated.
func (in *Input) Hidden() *Input {
	in.hidden = true
	return in
}

// NoUpdate leaves the field out on PUT and PATCH requests.
func (in *Input) NoUpdate() *Input {
	in.updatable = false
	return in
}

// NoEdit is an alias for NoUpdate.
func (in *Input) NoEdit() *Input { return in.NoUpdate() }

// Fails sets the message reported when any of the field's rules fails.
func (in *Input) Fails(message string) *Input {
	in.failMessage = message
	in.hasMessage = true
	return in
}

// ── Accessors ────────────────────────────────────────────────────────────────

func (in *Input) Name() string                 { return in.name }
func (in *Input) HasRules() bool               { return in.rules.Len() > 0 }
func (in *Input) IsHidden() bool               { return in.hidden }
func (in *Input) CanUpdate() bool              { return in.updatable }
func (in *Input) HasFailMessage() bool         { return in.hasMessage }
func (in *Input) FailMessage() string          { return in.failMessage }
func (in *Input) RuleSet() *validation.RuleSet { return in.rules }
func (in *Input) String() string               { return in.rules.String() }

// Value returns the request value of this field, or false when the field is
// not part of the owning validator's current selection.
func (in *Input) Value() (string, bool) {
	if in.lookup == nil {
		return "", false
	}
	return in.lookup(in)
}

// ── Rules ────────────────────────────────────────────────────────────────────

// Rule appends a named rule, e.g. Rule("min", "5").
func (in *Input) Rule(name string, params ...string) *Input {
	if name == "confirmed" {
		return in.Confirmed()
	}
	in.rules.Add(name, params...)
	return in
}

// Rules appends rules written in pipe syntax, e.g. Rules("required|min:5").
func (in *Input) Rules(expr string) *Input {
	validation.ParseRuleSet(expr).Each(func(name string, params ...string) {
		in.Rule(name, params...)
	})
	return in
}

func (in *Input) Required() *Input  { return in.Rule("required") }
func (in *Input) Nullable() *Input  { return in.Rule("nullable") }
func (in *Input) Sometimes() *Input { return in.Rule("sometimes") }
func (in *Input) Email() *Input     { return in.Rule("email") }
func (in *Input) URL() *Input       { return in.Rule("url") }
func (in *Input) UUID() *Input      { return in.Rule("uuid") }
func (in *Input) IP() *Input        { return in.Rule("ip") }
func (in *Input) Alpha() *Input     { return in.Rule("alpha") }
func (in *Input) AlphaNum() *Input  { return in.Rule("alpha_num") }
func (in *Input) AlphaDash() *Input { return in.Rule("alpha_dash") }
func (in *Input) Numeric() *Input   { return in.Rule("numeric") }
func (in *Input) Integer() *Input   { return in.Rule("integer") }
func (in *Input) Boolean() *Input   { return in.Rule("boolean") }
func (in *Input) Accepted() *Input  { return in.Rule("accepted") }

func (in *Input) Min(n int) *Input  { return in.Rule("min", strconv.Itoa(n)) }
func (in *Input) Max(n int) *Input  { return in.Rule("max", strconv.Itoa(n)) }
func (in *Input) Size(n int) *Input { return in.Rule("size", strconv.Itoa(n)) }

func (in *Input) Between(lo, hi int) *Input {
	return in.Rule("between", strconv.Itoa(lo), strconv.Itoa(hi))
}

func (in *Input) Gt(n float64) *Input  { return in.Rule("gt", number(n)) }
func (in *Input) Gte(n float64) *Input { return in.Rule("gte", number(n)) }
func (in *Input) Lt(n float64) *Input  { return in.Rule("lt", number(n)) }
func (in *Input) Lte(n float64) *Input { return in.Rule("lte", number(n)) }

func number(n float64) string { return strconv.FormatFloat(n, 'f', -1, 64) }

func (in *Input) In(values ...string) *Input    { return in.Rule("in", values...) }
func (in *Input) NotIn(values ...string) *Input { return in.Rule("not_in", values...) }

func (in *Input) Same(field string) *Input      { return in.Rule("same", field) }
func (in *Input) Different(field string) *Input { return in.Rule("different", field) }
func (in *Input) Regex(pattern string) *Input   { return in.Rule("regex", pattern) }

// Confirmed requires a matching "<name>_confirmation" field and registers
// that field, hidden, on the owning validator. Calling it again is a no-op.
func (in *Input) Confirmed() *Input {
	if in.rules.Has("confirmed") {
		return in
	}
	in.rules.Add("confirmed")
	if in.sibling != nil {
		in.sibling(in.name + ConfirmationSuffix).Hidden()
	}
	return in
}
