package validation

import "sort"

// Errors holds validation errors, like Laravel's MessageBag.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

// NewErrors wraps an existing field → messages map, e.g. one read back
// from the session flash.
func NewErrors(bag map[string][]string) *Errors {
	return &Errors{Bag: bag}
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return e != nil && len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs := e.Get(field); len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Get returns every error for a field.
func (e *Errors) Get(field string) []string {
	if e == nil {
		return nil
	}
	return e.Bag[field]
}

// Keys returns the fields with errors, sorted.
func (e *Errors) Keys() []string {
	if e == nil {
		return nil
	}
	keys := make([]string, 0, len(e.Bag))
	for k := range e.Bag {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the total number of messages.
func (e *Errors) Count() int {
	if e == nil {
		return 0
	}
	n := 0
	for _, msgs := range e.Bag {
		n += len(msgs)
	}
	return n
}
