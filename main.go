package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/go-laravel-input/framework/app"
	gohttp "github.com/km-arc/go-laravel-input/framework/http"
	"github.com/km-arc/go-laravel-input/framework/inputvalidator"
	"github.com/km-arc/go-laravel-input/framework/routing"
)

// ── Validators ───────────────────────────────────────────────────────────────

// AccountInput is used to create an account (POST) and to edit it (PUT).
type AccountInput struct{}

func (AccountInput) DefineInput(v *inputvalidator.Validator) {
	v.Add("username").Required().AlphaDash().Max(32).NoUpdate()
	v.Add("email").Required().Email().Fails("Please enter a valid email address.")
	v.Add("password").Required().Min(8).Confirmed().Hidden()
	v.Add("first_name").Required()
	v.Add("last_name").Required()
	v.Add("country").In("aus", "nzl")
	v.Add("city")
	v.Add("postal_code").Numeric()
	v.Add("terms").Accepted()
}

// LoginInput answers its own failures with a 401.
type LoginInput struct{}

func (LoginInput) DefineInput(v *inputvalidator.Validator) {
	v.Add("email").Required().Email()
	v.Add("password").Required().Hidden()
}

func (LoginInput) FilterFailResponse() inputvalidator.Response {
	return inputvalidator.Text(http.StatusUnauthorized, "Invalid credentials.")
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	application, err := app.New() // loads .env automatically
	if err != nil {
		return err
	}

	r := application.Router()
	validators := application.Validators()

	validators.RegisterClass("AccountInput", func() inputvalidator.Definer { return AccountInput{} })

	if err := validators.Add("account", inputvalidator.ByName("AccountInput"), inputvalidator.Back("/account")); err != nil {
		return err
	}
	if err := validators.Add("login", inputvalidator.ByClass(func() inputvalidator.Definer { return LoginInput{} }), nil); err != nil {
		return err
	}

	// ── Routes ───────────────────────────────────────────────────────────────

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{"message": "Welcome to Go-Laravel!"})
	})

	// form page: re-rendered with the previous attempt's input and errors
	r.Get("/account", func(w http.ResponseWriter, req *http.Request) {
		request := gohttp.NewRequest(req)
		gohttp.NewResponse(w).Success(map[string]any{
			"old":    map[string]string{"username": request.Old("username"), "email": request.Old("email")},
			"errors": request.ValidationErrors().Bag,
		})
	})

	r.With(r.Before("validator.account")).Post("/account", func(w http.ResponseWriter, req *http.Request) {
		input, _ := validators.Input(req.Context(), "account")
		gohttp.NewResponse(w).Created(input)
	})

	r.With(r.Before("validator.account")).Put("/account/{id}", func(w http.ResponseWriter, req *http.Request) {
		input, ok := validators.Input(req.Context(), "account")
		if !ok {
			gohttp.NewResponse(w).ServerError()
			return
		}
		input["id"] = routing.Param(req, "id")
		gohttp.NewResponse(w).Success(input)
	})

	r.With(r.Before("validator.login")).Post("/login", func(w http.ResponseWriter, req *http.Request) {
		input, _ := validators.Input(req.Context(), "login")
		application.Logger().InfoContext(req.Context(), "login", slog.String("email", input["email"]))
		gohttp.NewResponse(w).NoContent()
	})

	// ── Inline validation ────────────────────────────────────────────────────

	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/search", func(w http.ResponseWriter, req *http.Request) {
			request := gohttp.NewRequest(req)
			res := gohttp.NewResponse(w)

			v := inputvalidator.NewClosure(func(v *inputvalidator.Validator) {
				v.Add("q").Required().Min(2)
				v.Add("page").Sometimes().Integer().Gte(1)
			}, request, nil)

			if v.Fails() {
				res.ValidationError(v.Errors())
				return
			}
			res.Success(v.Input(false))
		})

		api.Get("/search/rules", func(w http.ResponseWriter, req *http.Request) {
			_, rules, messages := validators.MakeClosure(gohttp.NewRequest(req), func(v *inputvalidator.Validator) {
				v.Add("q").Required().Min(2).Fails("Search for at least two characters.")
				v.Add("page").Sometimes().Integer().Gte(1)
			})
			gohttp.NewResponse(w).Success(map[string]any{"rules": rules, "messages": messages})
		})
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}
