package inputvalidator_test

import (
	"maps"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/km-arc/go-laravel-input/framework/http/validation"
	"github.com/km-arc/go-laravel-input/framework/inputvalidator"
)

// fakeSource records what a validator flashes.
type fakeSource struct {
	method string
	data   map[string]string

	flashedErrors *validation.Errors
	flashedInput  map[string]string
	flashes       int
}

func newSource(method string, data map[string]string) *fakeSource {
	return &fakeSource{method: method, data: data}
}

func (s *fakeSource) Method() string { return s.method }

func (s *fakeSource) Only(keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.data[k]; ok {
			out[k] = v
		}
	}
	return out
}

func (s *fakeSource) FlashErrors(errs *validation.Errors) {
	s.flashedErrors = errs
	s.flashes++
}

func (s *fakeSource) FlashInput(input map[string]string) {
	s.flashedInput = maps.Clone(input)
}

// registrationInput is the account form used across the tests.
type registrationInput struct{}

func (registrationInput) DefineInput(v *inputvalidator.Validator) {
	v.Add("username").Rules("required|alpha_dash").NoUpdate()
	v.Add("email").Required().Email().Fails("Please enter valid email bro.")
	v.Add("password").Required().Min(5).Confirmed().Hidden().Fails("No password? You crazy!")
	v.Add("first_name").Required()
	v.Add("last_name").Required()
	v.Add("country").In("aus", "something")
	v.Add("city")
	v.Add("postal_code").Numeric()
	v.Add("terms").Accepted()
}

func validRegistration() map[string]string {
	return map[string]string{
		"username":              "k_m-arc",
		"email":                 "me@example.com",
		"password":              "secret",
		"password_confirmation": "secret",
		"first_name":            "Kim",
		"last_name":             "Arc",
		"country":               "aus",
		"city":                  "Sydney",
		"postal_code":           "2000",
		"terms":                 "yes",
	}
}

// fakeRegistration fills the account form with generated values that satisfy
// its rules.
func fakeRegistration(faker *gofakeit.Faker) map[string]string {
	password := faker.Password(true, true, true, false, false, 12)
	return map[string]string{
		"username":              faker.LetterN(10),
		"email":                 strings.ToLower(faker.LetterN(8)) + "@example.com",
		"password":              password,
		"password_confirmation": password,
		"first_name":            faker.FirstName(),
		"last_name":             faker.LastName(),
		"country":               faker.RandomString([]string{"aus", "something"}),
		"city":                  faker.City(),
		"postal_code":           faker.Zip(),
		"terms":                 faker.RandomString([]string{"yes", "on", "1", "true"}),
	}
}
