package inputvalidator

import (
	"net/http"
	"strings"

	"github.com/km-arc/go-laravel-input/framework/http/validation"
)

// Definer declares a validator's fields.
type Definer interface {
	DefineInput(v *Validator)
}

// PreChecker is implemented by definers that need to reject a request before
// any rule runs. Returning false fails the check without calling the engine.
type PreChecker interface {
	PreCheck(v *Validator) bool
}

// FailResponder is implemented by definers that carry their own filter
// failure response. Factory.Add uses it when no response is given.
type FailResponder interface {
	FilterFailResponse() Response
}

// Validator binds one Definer to one request. It is not safe for concurrent use.
type Validator struct {
	def      Definer
	src      Source
	engine   Engine
	updating bool

	order  []string
	fields map[string]*Input
	result Result
}

// New builds a validator and runs def.DefineInput. A nil engine means
// DefaultEngine.
func New(def Definer, src Source, engine Engine) *Validator {
	if engine == nil {
		engine = DefaultEngine
	}
	method := strings.ToUpper(src.Method())

	v := &Validator{
		def:      def,
		src:      src,
		engine:   engine,
		updating: method == http.MethodPut || method == http.MethodPatch,
		fields:   make(map[string]*Input),
	}
	def.DefineInput(v)
	return v
}

// ── Definition ───────────────────────────────────────────────────────────────

// Add registers a field and returns it for chaining. Adding a name twice
// replaces the earlier Input but keeps its position.
func (v *Validator) Add(name string) *Input {
	in := newInput(name, v.sibling, v.Value)
	if _, ok := v.fields[name]; !ok {
		v.order = append(v.order, name)
	}
	v.fields[name] = in
	return in
}

// sibling returns the named field, adding it when it was not declared yet.
func (v *Validator) sibling(name string) *Input {
	if in, ok := v.fields[name]; ok {
		return in
	}
	return v.Add(name)
}

// Fields returns the declared field names in declaration order.
func (v *Validator) Fields() []string {
	return append([]string(nil), v.order...)
}

// Field returns a declared Input by name.
func (v *Validator) Field(name string) (*Input, bool) {
	in, ok := v.fields[name]
	return in, ok
}

// IsUpdating reports whether the request is a PUT or PATCH.
func (v *Validator) IsUpdating() bool { return v.updating }

// ── Selection ────────────────────────────────────────────────────────────────

// Select returns the fields in play for this request: NoUpdate fields are
// dropped when updating, hidden fields when withHidden is false. The view is
// rebuilt on every call.
func (v *Validator) Select(withHidden bool) []*Input {
	selected := make([]*Input, 0, len(v.order))
	for _, name := range v.order {
		in := v.fields[name]
		if v.updating && !in.CanUpdate() {
			continue
		}
		if !withHidden && in.IsHidden() {
			continue
		}
		selected = append(selected, in)
	}
	return selected
}

// Input returns the request values of the selected fields. Fields missing
// from the request are absent from the map.
func (v *Validator) Input(withHidden bool) map[string]string {
	selected := v.Select(withHidden)
	keys := make([]string, len(selected))
	for i, in := range selected {
		keys[i] = in.Name()
	}
	input := v.src.Only(keys...)
	if input == nil {
		input = map[string]string{}
	}
	return input
}

// Rules returns the rendered rules of every selected field that has any.
func (v *Validator) Rules() validation.Rules {
	rules := validation.Rules{}
	for _, in := range v.Select(true) {
		if in.HasRules() {
			rules[in.Name()] = in.String()
		}
	}
	return rules
}

// FailedMessages returns the custom messages of selected fields that have
// both rules and a message.
func (v *Validator) FailedMessages() validation.Messages {
	messages := validation.Messages{}
	for _, in := range v.Select(true) {
		if in.HasRules() && in.HasFailMessage() {
			messages[in.Name()] = in.FailMessage()
		}
	}
	return messages
}

// ── Lookup ───────────────────────────────────────────────────────────────────

// Get returns the request value of a selected field. It reports false when
// the field is not selected or not present in the request.
func (v *Validator) Get(name string) (string, bool) {
	for _, in := range v.Select(true) {
		if in.Name() == name {
			value, ok := v.src.Only(name)[name]
			return value, ok
		}
	}
	return "", false
}

// Value is Get for an Input. The Input must be the one currently registered
// under its name.
func (v *Validator) Value(in *Input) (string, bool) {
	for _, selected := range v.Select(true) {
		if selected == in {
			return v.Get(in.Name())
		}
	}
	return "", false
}

// ── Checking ─────────────────────────────────────────────────────────────────

// Check validates the request. On failure the errors and the non-hidden
// input are flashed to the request. Every call evaluates again.
func (v *Validator) Check() bool {
	if pc, ok := v.def.(PreChecker); ok && !pc.PreCheck(v) {
		return false
	}

	v.result = v.engine.Evaluate(v.Input(true), v.Rules(), v.FailedMessages())
	if v.result.Fails() {
		v.src.FlashErrors(v.result.Errors())
		v.src.FlashInput(v.Input(false))
		return false
	}
	return true
}

// Passes is Check.
func (v *Validator) Passes() bool { return v.Check() }

// Fails is the negation of Check.
func (v *Validator) Fails() bool { return !v.Check() }

// Result returns the last engine result, or nil before the first evaluation.
func (v *Validator) Result() Result { return v.result }

// Errors returns the last evaluation's error bag. It is empty before the
// first Check.
func (v *Validator) Errors() *validation.Errors {
	if v.result == nil {
		return &validation.Errors{}
	}
	return v.result.Errors()
}

// ── Closures ─────────────────────────────────────────────────────────────────

// DefinerFunc declares fields inline.
type DefinerFunc func(v *Validator)

func (fn DefinerFunc) DefineInput(v *Validator) { fn(v) }

// NewClosure builds a validator from an inline definition.
func NewClosure(fn DefinerFunc, src Source, engine Engine) *Validator {
	return New(fn, src, engine)
}
