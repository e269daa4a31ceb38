package inputvalidator

import (
	"github.com/km-arc/go-laravel-input/framework/http/validation"
)

// Source is the request a Validator reads from and flashes back to.
// *gohttp.Request implements it.
type Source interface {
	Method() string
	Only(keys ...string) map[string]string
	FlashErrors(errs *validation.Errors)
	FlashInput(input map[string]string)
}

// Result is the outcome of one engine evaluation.
type Result interface {
	Fails() bool
	Errors() *validation.Errors
}

// Engine evaluates input against rules and custom messages.
type Engine interface {
	Evaluate(data map[string]string, rules validation.Rules, messages validation.Messages) Result
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(data map[string]string, rules validation.Rules, messages validation.Messages) Result

func (fn EngineFunc) Evaluate(data map[string]string, rules validation.Rules, messages validation.Messages) Result {
	return fn(data, rules, messages)
}

// DefaultEngine runs the framework's validation package.
var DefaultEngine Engine = EngineFunc(func(data map[string]string, rules validation.Rules, messages validation.Messages) Result {
	return validation.MakeWithMessages(data, rules, messages)
})
