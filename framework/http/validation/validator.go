package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"email": "required|email", "age": "required|numeric|min:18"}
type Rules map[string]string

// Messages overrides the default failure messages.
// Keys are looked up as "field.rule", then "field", then "rule".
// ":attribute" in a message is replaced with the field name.
type Messages map[string]string

// Validator validates a flat map of input values.
type Validator struct {
	data     map[string]string
	rules    Rules
	messages Messages
	errors   *Errors
}

var (
	formats = playground.New()

	alphaRe     = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumRe  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaDashRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// Make creates a new Validator — mirrors Validator::make($data, $rules).
func Make(data map[string]string, rules Rules) *Validator {
	return MakeWithMessages(data, rules, nil)
}

// MakeWithMessages creates a Validator with custom failure messages, like
// Validator::make($data, $rules, $messages).
func MakeWithMessages(data map[string]string, rules Rules, messages Messages) *Validator {
	if data == nil {
		data = map[string]string{}
	}
	return &Validator{
		data:     data,
		rules:    rules,
		messages: messages,
		errors:   &Errors{},
	}
}

// Fails runs validation and returns true if any rule fails.
// Every call evaluates from an empty error bag.
func (v *Validator) Fails() bool {
	v.validate()
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) validate() {
	v.errors = &Errors{}

	fields := make([]string, 0, len(v.rules))
	for field := range v.rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value := v.data[field]

		for _, rule := range SplitRules(v.rules[field]) {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}

			// min:3 → name=min, param=3
			name, param, _ := strings.Cut(rule, ":")

			msg, ok := v.applyRule(field, value, name, param)
			if !ok {
				if msg != "" {
					v.errors.add(field, v.message(field, name, msg))
				}
				break // bail on the first failure for this field
			}
		}
	}
}

// message picks a custom message for field/rule, falling back to def.
// A bare rule key that is also a field under validation belongs to that
// field and is not applied to others.
func (v *Validator) message(field, rule, def string) string {
	for _, key := range []string{field + "." + rule, field, rule} {
		if key == rule && key != field {
			if _, isField := v.rules[key]; isField {
				continue
			}
		}
		if custom, ok := v.messages[key]; ok {
			return strings.ReplaceAll(custom, ":attribute", field)
		}
	}
	return def
}

// applyRule reports whether the rule passes. A failed rule with an empty
// message stops the field silently.
func (v *Validator) applyRule(field, value, rule, param string) (string, bool) {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			return fmt.Sprintf("The %s field is required.", field), false
		}

	case "accepted":
		switch strings.ToLower(value) {
		case "yes", "on", "1", "true":
		default:
			return fmt.Sprintf("The %s must be accepted.", field), false
		}

	case "string":
		// Form values are always strings.

	case "numeric":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Sprintf("The %s must be a number.", field), false
		}

	case "integer":
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Sprintf("The %s must be an integer.", field), false
		}

	case "boolean":
		switch strings.ToLower(value) {
		case "true", "false", "1", "0", "yes", "no":
		default:
			return fmt.Sprintf("The %s field must be true or false.", field), false
		}

	case "email":
		if formats.Var(value, "required,email") != nil {
			return fmt.Sprintf("The %s must be a valid email address.", field), false
		}

	case "url":
		web := strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
		if !web || formats.Var(value, "required,url") != nil {
			return fmt.Sprintf("The %s must be a valid URL.", field), false
		}

	case "uuid":
		if formats.Var(value, "required,uuid") != nil {
			return fmt.Sprintf("The %s must be a valid UUID.", field), false
		}

	case "ip":
		if formats.Var(value, "required,ip") != nil {
			return fmt.Sprintf("The %s must be a valid IP address.", field), false
		}

	case "min":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) < n {
			return fmt.Sprintf("The %s must be at least %d characters.", field, n), false
		}

	case "max":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			return fmt.Sprintf("The %s may not be greater than %d characters.", field, n), false
		}

	case "size":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) != n {
			return fmt.Sprintf("The %s must be %d characters.", field, n), false
		}

	case "between":
		lo, hi, ok := strings.Cut(param, ",")
		if !ok {
			break
		}
		min, _ := strconv.Atoi(strings.TrimSpace(lo))
		max, _ := strconv.Atoi(strings.TrimSpace(hi))
		l := utf8.RuneCountInString(value)
		if l < min || l > max {
			return fmt.Sprintf("The %s must be between %d and %d characters.", field, min, max), false
		}

	case "in":
		for _, a := range strings.Split(param, ",") {
			if strings.TrimSpace(a) == value {
				return "", true
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field), false

	case "not_in":
		for _, d := range strings.Split(param, ",") {
			if strings.TrimSpace(d) == value {
				return fmt.Sprintf("The selected %s is invalid.", field), false
			}
		}

	case "confirmed":
		if v.data[field+"_confirmation"] != value {
			return fmt.Sprintf("The %s confirmation does not match.", field), false
		}

	case "same":
		if v.data[param] != value {
			return fmt.Sprintf("The %s and %s must match.", field, param), false
		}

	case "different":
		if v.data[param] == value {
			return fmt.Sprintf("The %s and %s must be different.", field, param), false
		}

	case "alpha":
		if !alphaRe.MatchString(value) {
			return fmt.Sprintf("The %s may only contain letters.", field), false
		}

	case "alpha_num":
		if !alphaNumRe.MatchString(value) {
			return fmt.Sprintf("The %s may only contain letters and numbers.", field), false
		}

	case "alpha_dash":
		if !alphaDashRe.MatchString(value) {
			return fmt.Sprintf("The %s may only contain letters, numbers, dashes and underscores.", field), false
		}

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(value) {
			return fmt.Sprintf("The %s format is invalid.", field), false
		}

	case "nullable":
		if value == "" {
			return "", false
		}

	case "sometimes":
		if _, present := v.data[field]; !present {
			return "", false
		}

	case "gt", "gte", "lt", "lte":
		return compare(field, value, rule, param)
	}

	return "", true
}

func compare(field, value, rule, param string) (string, bool) {
	f, _ := strconv.ParseFloat(value, 64)
	t, _ := strconv.ParseFloat(param, 64)

	switch rule {
	case "gt":
		if f <= t {
			return fmt.Sprintf("The %s must be greater than %s.", field, param), false
		}
	case "gte":
		if f < t {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param), false
		}
	case "lt":
		if f >= t {
			return fmt.Sprintf("The %s must be less than %s.", field, param), false
		}
	case "lte":
		if f > t {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param), false
		}
	}
	return "", true
}
