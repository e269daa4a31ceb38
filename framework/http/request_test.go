package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-laravel-input/framework/http"
	"github.com/km-arc/go-laravel-input/framework/http/validation"
	"github.com/km-arc/go-laravel-input/framework/session"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newJSONRequest(t *testing.T, method, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newFormRequest(t *testing.T, method string, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withSession(r *http.Request, s *session.Session) *http.Request {
	return r.WithContext(session.WithContext(r.Context(), s))
}

// ── Bind ─────────────────────────────────────────────────────────────────────

func TestRequest_BindJSON(t *testing.T) {
	var u struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	req := gohttp.NewRequest(newJSONRequest(t, http.MethodPost, `{"name":"Alice","email":"alice@example.com"}`))

	require.NoError(t, req.Bind(&u))
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestRequest_BindJSON_Errors(t *testing.T) {
	var v map[string]any
	assert.Error(t, gohttp.NewRequest(newJSONRequest(t, http.MethodPost, "")).Bind(&v))
	assert.Error(t, gohttp.NewRequest(newJSONRequest(t, http.MethodPost, "{bad json}")).Bind(&v))
}

func TestRequest_BindForm(t *testing.T) {
	var p struct {
		Name string `json:"name"`
	}
	req := gohttp.NewRequest(newFormRequest(t, http.MethodPost, url.Values{"name": {"Bob"}}))

	require.NoError(t, req.Bind(&p))
	assert.Equal(t, "Bob", p.Name)
}

// ── Input ────────────────────────────────────────────────────────────────────

func TestRequest_InputAndQuery(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/?page=2", nil))

	assert.Equal(t, "2", req.Input("page"))
	assert.Equal(t, "2", req.Query("page"))
	assert.Equal(t, "default", req.Input("missing", "default"))
	assert.Equal(t, "1", req.Query("missing", "1"))
}

func TestRequest_Has(t *testing.T) {
	req := gohttp.NewRequest(newFormRequest(t, http.MethodPost, url.Values{"name": {"Alice"}, "empty": {""}}))

	assert.True(t, req.Has("name"))
	assert.False(t, req.Has("empty"))
	assert.False(t, req.Has("missing"))
}

func TestRequest_OnlyForm(t *testing.T) {
	req := gohttp.NewRequest(newFormRequest(t, http.MethodPost, url.Values{
		"email":    {"a@b.com"},
		"password": {"secret"},
		"extra":    {"x"},
	}))

	assert.Equal(t, map[string]string{"email": "a@b.com", "password": "secret"}, req.Only("email", "password", "missing"))
	assert.Equal(t, map[string]string{"extra": "x"}, req.Except("email", "password"))
}

func TestRequest_OnlyJSON(t *testing.T) {
	r := newJSONRequest(t, http.MethodPut, `{"email":"a@b.com","postal_code":235245,"terms":true,"nick":null}`)

	req := gohttp.NewRequest(r)
	assert.Equal(t, map[string]string{
		"email":       "a@b.com",
		"postal_code": "235245",
		"terms":       "true",
		"nick":        "",
	}, req.Only("email", "postal_code", "terms", "nick"))

	// a second wrapper over the same request still sees the body
	var body map[string]any
	require.NoError(t, gohttp.NewRequest(r).Bind(&body))
	assert.Equal(t, "a@b.com", body["email"])
}

// ── Flash ────────────────────────────────────────────────────────────────────

func TestRequest_FlashRoundTrip(t *testing.T) {
	s := session.New(time.Hour)

	first := gohttp.NewRequest(withSession(newFormRequest(t, http.MethodPost, url.Values{
		"email":    {"bad"},
		"password": {"secret"},
	}), s))
	first.FlashErrors(validation.NewErrors(map[string][]string{"email": {"The email must be a valid email address."}}))
	first.FlashOnly("email")
	s.AgeFlash()

	next := gohttp.NewRequest(withSession(httptest.NewRequest(http.MethodGet, "/", nil), s))
	assert.Equal(t, "bad", next.Old("email"))
	assert.Equal(t, "none", next.Old("password", "none"))
	assert.Equal(t, "The email must be a valid email address.", next.ValidationErrors().First("email"))
}

func TestRequest_FlashWithoutSession(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	req.FlashInput(map[string]string{"a": "b"})
	req.FlashErrors(nil)

	assert.Equal(t, "b", req.Old("a"))
	assert.False(t, req.ValidationErrors().Has())
}

// ── Metadata ─────────────────────────────────────────────────────────────────

func TestRequest_Metadata(t *testing.T) {
	r := httptest.NewRequest(http.MethodPatch, "/users/1", nil)
	r.Header.Set("Authorization", "Bearer my-secret-token")
	r.Header.Set("Accept", "application/json")
	req := gohttp.NewRequest(r)

	assert.Equal(t, http.MethodPatch, req.Method())
	assert.Equal(t, "/users/1", req.Path())
	assert.Equal(t, "my-secret-token", req.BearerToken())
	assert.True(t, req.IsJSON())
}
