package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-laravel-input/framework/http/validation"
	"github.com/km-arc/go-laravel-input/framework/session"
)

const maxMemory = 32 << 20 // 32 MB

// Session keys used for flashed validation state.
const (
	ErrorsKey   = "errors"
	OldInputKey = "_old_input"
)

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw     *http.Request
	session *session.Session
	input   map[string]string
}

// NewRequest wraps a standard *http.Request. Flash helpers write to the
// session attached by session.Middleware; without one they write to a
// throwaway session.
func NewRequest(r *http.Request) *Request {
	s := session.FromContext(r.Context())
	if s == nil {
		s = &session.Session{}
	}
	return &Request{raw: r, session: s}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// Session returns the request session.
func (req *Request) Session() *session.Session { return req.session }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request body into v.
// Supports JSON and application/x-www-form-urlencoded / multipart.
func (req *Request) Bind(v any) error {
	ct := req.ContentType()

	switch {
	case strings.Contains(ct, "application/json"):
		body, err := req.body()
		if err != nil {
			return err
		}
		if len(body) == 0 {
			return errors.New("empty request body")
		}
		return json.Unmarshal(body, v)
	case strings.Contains(ct, "multipart/form-data"):
		if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
			return err
		}
		return bindForm(req.raw.MultipartForm.Value, v)
	default:
		if err := req.raw.ParseForm(); err != nil {
			return err
		}
		return bindForm(map[string][]string(req.raw.PostForm), v)
	}
}

// body reads the request body and puts it back so later wrappers of the
// same request can read it again.
func (req *Request) body() ([]byte, error) {
	if req.raw.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(req.raw.Body)
	_ = req.raw.Body.Close()
	req.raw.Body = io.NopCloser(bytes.NewReader(body))
	return body, err
}

// bindForm maps form values onto a struct through a JSON round-trip.
func bindForm(values map[string][]string, v any) error {
	m := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 1 {
			m[k] = vals[0]
		} else {
			m[k] = vals
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Input returns a single input value (query string, form or JSON body).
func (req *Request) Input(key string, fallback ...string) string {
	v, ok := req.All()[key]
	if (!ok || v == "") && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// All returns all input as a flat map. JSON body values override form
// values, which override the query string.
func (req *Request) All() map[string]string {
	if req.input != nil {
		return req.input
	}

	out := make(map[string]string)
	if strings.Contains(req.ContentType(), "application/json") {
		for k, v := range req.raw.URL.Query() {
			if len(v) > 0 {
				out[k] = v[0]
			}
		}
		if body, err := req.body(); err == nil && len(body) > 0 {
			var decoded map[string]any
			if json.Unmarshal(body, &decoded) == nil {
				for k, v := range decoded {
					out[k] = scalar(v)
				}
			}
		}
	} else {
		_ = req.raw.ParseForm()
		for k, v := range req.raw.Form {
			if len(v) > 0 {
				out[k] = v[0]
			}
		}
	}

	req.input = out
	return out
}

// Only returns the subset of input named by keys. Keys absent from the
// request are left out.
func (req *Request) Only(keys ...string) map[string]string {
	all := req.All()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := all[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Except returns all input without the given keys.
func (req *Request) Except(keys ...string) map[string]string {
	out := make(map[string]string)
	for k, v := range req.All() {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Has returns true if the key is present and non-empty.
func (req *Request) Has(key string) bool {
	return req.Input(key) != ""
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// ── Flash ────────────────────────────────────────────────────────────────────

// FlashErrors stores the error bag for the next request.
func (req *Request) FlashErrors(errs *validation.Errors) {
	if errs == nil {
		return
	}
	req.session.Flash(ErrorsKey, errs.Bag)
}

// FlashInput stores submitted values for the next request, so a form can
// be re-rendered with them.
func (req *Request) FlashInput(input map[string]string) {
	req.session.Flash(OldInputKey, input)
}

// FlashOnly flashes the named input keys. Laravel: $request->flashOnly([...]).
func (req *Request) FlashOnly(keys ...string) {
	req.FlashInput(req.Only(keys...))
}

// Old returns a value flashed by a previous request.
func (req *Request) Old(key string, fallback ...string) string {
	if v, ok := req.session.StringMap(OldInputKey)[key]; ok {
		return v
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}

// ValidationErrors returns the error bag flashed by a previous request.
// The bag is empty when nothing was flashed.
func (req *Request) ValidationErrors() *validation.Errors {
	return validation.NewErrors(req.session.StringsMap(ErrorsKey))
}

// ── Request metadata ─────────────────────────────────────────────────────────

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// BearerToken extracts the token from Authorization: Bearer <token>.
func (req *Request) BearerToken() string {
	auth := req.raw.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") ||
		strings.Contains(req.ContentType(), "application/json")
}

// ── File uploads ─────────────────────────────────────────────────────────────

// File returns an uploaded file by field name.
func (req *Request) File(key string) (*multipart.FileHeader, error) {
	if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
		return nil, err
	}
	_, fh, err := req.raw.FormFile(key)
	return fh, err
}
