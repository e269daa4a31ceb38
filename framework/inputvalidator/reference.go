package inputvalidator

import "fmt"

// Constructor creates a fresh Definer for each validation.
type Constructor func() Definer

type refKind uint8

const (
	refName refKind = iota + 1
	refClass
	refClosure
)

// Reference points the factory at a validator. Build one with ByName,
// ByClass or ByClosure.
type Reference struct {
	kind refKind
	name string
	ctor Constructor
	fn   DefinerFunc
}

// ByName refers to a validator added to the factory, or to a class
// registered with RegisterClass.
func ByName(name string) Reference { return Reference{kind: refName, name: name} }

// ByClass refers to a validator type through its constructor.
func ByClass(ctor Constructor) Reference { return Reference{kind: refClass, ctor: ctor} }

// ByClosure refers to an inline definition.
func ByClosure(fn DefinerFunc) Reference { return Reference{kind: refClosure, fn: fn} }

func (r Reference) String() string {
	switch r.kind {
	case refName:
		return fmt.Sprintf("name(%s)", r.name)
	case refClass:
		return "class"
	case refClosure:
		return "closure"
	default:
		return "invalid"
	}
}
