package inputvalidator

import (
	"net/http"

	gohttp "github.com/km-arc/go-laravel-input/framework/http"
)

// Response answers a request whose validator filter failed.
type Response interface {
	Respond(r *http.Request) http.Handler
}

// ResponseFunc is called on every failure. Returning nil answers with the
// default 422 JSON error bag.
type ResponseFunc func(r *http.Request) http.Handler

func (fn ResponseFunc) Respond(r *http.Request) http.Handler { return fn(r) }

type static struct {
	h http.Handler
}

func (s static) Respond(*http.Request) http.Handler { return s.h }

// Static answers every failure with the same handler.
func Static(h http.Handler) Response { return static{h: h} }

// Text answers with a plain-text body.
//
//	factory.Add("login", ref, inputvalidator.Text(http.StatusForbidden, "access denied"))
func Text(status int, body string) Response {
	return Static(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).Text(status, body)
	}))
}

// Redirect answers with a 302 to url.
func Redirect(url string) Response {
	return Static(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).RedirectTo(url)
	}))
}

// Back redirects to the Referer, or to fallback when there is none.
func Back(fallback string) Response {
	return Static(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gohttp.NewResponse(w).RedirectBack(r, fallback)
	}))
}
