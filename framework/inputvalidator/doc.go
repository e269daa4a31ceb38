// Package inputvalidator declares, per use case, which request fields are
// expected, the rules each must satisfy, and which of them are echoed back or
// editable on update.
//
// A use case implements Definer and declares its fields with Validator.Add:
//
//	type RegisterInput struct{}
//
//	func (RegisterInput) DefineInput(v *inputvalidator.Validator) {
//	    v.Add("username").Required().AlphaDash().NoUpdate()
//	    v.Add("email").Required().Email().Fails("Please enter a valid email.")
//	    v.Add("password").Required().Min(5).Confirmed().Hidden()
//	}
//
// Checking a request:
//
//	v := inputvalidator.New(RegisterInput{}, gohttp.NewRequest(r), nil)
//	if v.Fails() {
//	    // errors and the non-hidden input were flashed to the session
//	}
//
// On PUT and PATCH requests fields marked NoUpdate are left out. Hidden fields
// are validated but never flashed back.
//
// # Factory
//
// A Factory maps names to validators and registers a route filter for each
// one under "validator.<name>":
//
//	factory := inputvalidator.NewFactory(router)
//	factory.RegisterClass("register", func() inputvalidator.Definer { return RegisterInput{} })
//	_ = factory.Add("register", inputvalidator.ByName("register"), inputvalidator.Back("/register"))
//
//	router.With(router.Before("validator.register")).Post("/register", func(w http.ResponseWriter, r *http.Request) {
//	    input, _ := factory.Input(r.Context(), "register")
//	    ...
//	})
//
// When the filter fails the request is answered with the Response given to
// Add. When it passes, the validated non-hidden input is kept in the
// factory's InputStore under the validator name.
//
// One-off validators can be declared inline:
//
//	input, rules, messages := factory.MakeClosure(src, func(v *inputvalidator.Validator) {
//	    v.Add("q").Required()
//	})
package inputvalidator
