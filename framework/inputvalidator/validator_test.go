package inputvalidator_test

import (
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-laravel-input/framework/http/validation"
	"github.com/km-arc/go-laravel-input/framework/inputvalidator"
)

func names(ins []*inputvalidator.Input) []string {
	out := make([]string, len(ins))
	for i, in := range ins {
		out[i] = in.Name()
	}
	return out
}

var allFields = []string{
	"username", "email", "password", "password_confirmation",
	"first_name", "last_name", "country", "city", "postal_code", "terms",
}

// ── Selection ────────────────────────────────────────────────────────────────

func TestValidator_UpdatingMode(t *testing.T) {
	for method, want := range map[string]bool{
		http.MethodGet:    false,
		http.MethodPost:   false,
		http.MethodDelete: false,
		http.MethodPut:    true,
		http.MethodPatch:  true,
		"patch":           true,
	} {
		v := inputvalidator.New(registrationInput{}, newSource(method, nil), nil)
		assert.Equal(t, want, v.IsUpdating(), method)
	}
}

func TestValidator_SelectCreating(t *testing.T) {
	v := inputvalidator.New(registrationInput{}, newSource(http.MethodPost, nil), nil)

	assert.Equal(t, allFields, names(v.Select(true)))
	assert.Equal(t, []string{
		"username", "email", "first_name", "last_name", "country", "city", "postal_code", "terms",
	}, names(v.Select(false)))
}

func TestValidator_SelectUpdating(t *testing.T) {
	v := inputvalidator.New(registrationInput{}, newSource(http.MethodPut, nil), nil)

	assert.NotContains(t, names(v.Select(true)), "username")
	assert.Equal(t, []string{
		"email", "first_name", "last_name", "country", "city", "postal_code", "terms",
	}, names(v.Select(false)))
}

func TestValidator_AddTwiceKeepsPosition(t *testing.T) {
	v := define(func(v *inputvalidator.Validator) {
		v.Add("a").Required()
		v.Add("b")
		v.Add("a").Email()
	})

	assert.Equal(t, []string{"a", "b"}, v.Fields())
	assert.Equal(t, validation.Rules{"a": "email"}, v.Rules())
}

// ── Aggregation ──────────────────────────────────────────────────────────────

func TestValidator_Rules(t *testing.T) {
	v := inputvalidator.New(registrationInput{}, newSource(http.MethodPost, nil), nil)

	assert.Equal(t, validation.Rules{
		"username":    "required|alpha_dash",
		"email":       "required|email",
		"password":    "required|min:5|confirmed",
		"first_name":  "required",
		"last_name":   "required",
		"country":     "in:aus,something",
		"postal_code": "numeric",
		"terms":       "accepted",
	}, v.Rules())
}

func TestValidator_UpdateRoundTrip(t *testing.T) {
	v := inputvalidator.New(registrationInput{}, newSource(http.MethodPatch, nil), nil)

	rules := v.Rules()
	assert.NotContains(t, rules, "username")
	assert.NotContains(t, rules, "city")
	assert.Contains(t, rules, "password")

	assert.Equal(t, validation.Messages{
		"email":    "Please enter valid email bro.",
		"password": "No password? You crazy!",
	}, v.FailedMessages())
}

func TestValidator_MessagesNeedRules(t *testing.T) {
	v := define(func(v *inputvalidator.Validator) {
		v.Add("note").Fails("ignored without rules")
		v.Add("age").Numeric().Fails("Age is a number.")
	})

	assert.Equal(t, validation.Messages{"age": "Age is a number."}, v.FailedMessages())
}

func TestValidator_Input(t *testing.T) {
	data := validRegistration()
	data["is_admin"] = "1"
	delete(data, "city")

	v := inputvalidator.New(registrationInput{}, newSource(http.MethodPost, data), nil)

	all := v.Input(true)
	assert.NotContains(t, all, "is_admin")
	assert.NotContains(t, all, "city")
	assert.Equal(t, "secret", all["password"])

	visible := v.Input(false)
	assert.NotContains(t, visible, "password")
	assert.NotContains(t, visible, "password_confirmation")
	assert.Equal(t, "k_m-arc", visible["username"])
}

// ── Checking ─────────────────────────────────────────────────────────────────

func TestValidator_GeneratedRegistrationsPass(t *testing.T) {
	faker := gofakeit.New(0)
	for i := 0; i < 25; i++ {
		data := fakeRegistration(faker)
		src := newSource(http.MethodPost, data)
		v := inputvalidator.New(registrationInput{}, src, nil)

		require.True(t, v.Passes(), "input %v: %v", data, v.Errors().Bag)
		assert.Equal(t, data["email"], v.Input(false)["email"])
		assert.NotContains(t, v.Input(false), "password")
	}
}

func TestValidator_CheckPasses(t *testing.T) {
	src := newSource(http.MethodPost, validRegistration())
	v := inputvalidator.New(registrationInput{}, src, nil)

	assert.Nil(t, v.Result())
	assert.False(t, v.Errors().Has())

	require.True(t, v.Check())
	assert.True(t, v.Passes())
	assert.False(t, v.Fails())
	assert.NotNil(t, v.Result())
	assert.Zero(t, src.flashes)
}

func TestValidator_CheckFailsAndFlashes(t *testing.T) {
	data := validRegistration()
	data["email"] = "not-an-email"
	data["password_confirmation"] = "different"
	src := newSource(http.MethodPost, data)

	v := inputvalidator.New(registrationInput{}, src, nil)
	require.True(t, v.Fails())

	assert.Equal(t, []string{"email", "password"}, v.Errors().Keys())
	assert.Equal(t, "Please enter valid email bro.", v.Errors().First("email"))
	assert.Equal(t, "No password? You crazy!", v.Errors().First("password"))

	assert.Equal(t, v.Errors(), src.flashedErrors)
	assert.Equal(t, "not-an-email", src.flashedInput["email"])
	assert.NotContains(t, src.flashedInput, "password")
	assert.NotContains(t, src.flashedInput, "password_confirmation")
}

func TestValidator_CheckRunsEveryTime(t *testing.T) {
	calls := 0
	engine := inputvalidator.EngineFunc(func(data map[string]string, rules validation.Rules, messages validation.Messages) inputvalidator.Result {
		calls++
		return validation.MakeWithMessages(data, rules, messages)
	})

	v := inputvalidator.New(registrationInput{}, newSource(http.MethodPost, validRegistration()), engine)
	v.Check()
	v.Check()
	v.Fails()

	assert.Equal(t, 3, calls)
}

func TestValidator_UpdateSkipsNoUpdateRules(t *testing.T) {
	data := validRegistration()
	delete(data, "username")

	assert.True(t, inputvalidator.New(registrationInput{}, newSource(http.MethodPatch, data), nil).Passes())
	assert.True(t, inputvalidator.New(registrationInput{}, newSource(http.MethodPost, data), nil).Fails())
}

type lockedInput struct {
	allow bool
}

func (l lockedInput) DefineInput(v *inputvalidator.Validator) {
	v.Add("name").Required()
}

func (l lockedInput) PreCheck(*inputvalidator.Validator) bool { return l.allow }

func TestValidator_PreCheck(t *testing.T) {
	called := false
	engine := inputvalidator.EngineFunc(func(data map[string]string, rules validation.Rules, messages validation.Messages) inputvalidator.Result {
		called = true
		return validation.MakeWithMessages(data, rules, messages)
	})
	src := newSource(http.MethodPost, map[string]string{"name": "ok"})

	assert.True(t, inputvalidator.New(lockedInput{allow: false}, src, engine).Fails())
	assert.False(t, called)
	assert.Zero(t, src.flashes)

	assert.True(t, inputvalidator.New(lockedInput{allow: true}, src, engine).Passes())
	assert.True(t, called)
}

func TestValidator_FailMessageStaysOnItsField(t *testing.T) {
	src := newSource(http.MethodPost, map[string]string{"email": "me@example.com", "backup_email": "nope"})
	v := inputvalidator.NewClosure(func(v *inputvalidator.Validator) {
		v.Add("email").Required().Email().Fails("Please enter valid email bro.")
		v.Add("backup_email").Email()
	}, src, nil)

	require.False(t, v.Check())
	assert.Equal(t, "The backup_email must be a valid email address.", v.Errors().First("backup_email"))
	assert.False(t, len(v.Errors().Get("email")) > 0)
}

func TestValidator_RegexWithAlternation(t *testing.T) {
	define := func(v *inputvalidator.Validator) {
		v.Add("color").Required().Regex(`^(red|blue)$`)
	}

	v := inputvalidator.NewClosure(define, newSource(http.MethodPost, map[string]string{"color": "red"}), nil)
	assert.True(t, v.Check(), "errors: %v", v.Errors().Bag)

	v = inputvalidator.NewClosure(define, newSource(http.MethodPost, map[string]string{"color": "green"}), nil)
	require.False(t, v.Check())
	assert.Equal(t, "The color format is invalid.", v.Errors().First("color"))
}

// ── Lookup ───────────────────────────────────────────────────────────────────

func TestValidator_Get(t *testing.T) {
	data := validRegistration()
	delete(data, "city")

	v := inputvalidator.New(registrationInput{}, newSource(http.MethodPut, data), nil)

	got, ok := v.Get("email")
	require.True(t, ok)
	assert.Equal(t, "me@example.com", got)

	_, ok = v.Get("username")
	assert.False(t, ok, "excluded while updating")

	_, ok = v.Get("city")
	assert.False(t, ok, "not submitted")

	_, ok = v.Get("undeclared")
	assert.False(t, ok)
}

func TestValidator_ValueMatchesIdentity(t *testing.T) {
	var stale *inputvalidator.Input
	v := inputvalidator.NewClosure(func(v *inputvalidator.Validator) {
		stale = v.Add("email")
		v.Add("email").Email()
	}, newSource(http.MethodPost, map[string]string{"email": "me@example.com"}), nil)

	_, ok := v.Value(stale)
	assert.False(t, ok)

	current, _ := v.Field("email")
	got, ok := v.Value(current)
	require.True(t, ok)
	assert.Equal(t, "me@example.com", got)
}
