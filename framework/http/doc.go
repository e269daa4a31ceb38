// Package http provides Laravel-compatible request and response helpers.
//
// # Request
//
// Request wraps *http.Request and the session started by session.Middleware.
//
//	req := gohttp.NewRequest(r)
//
//	// Bind JSON / form body into a struct
//	var payload struct {
//	    Name string `json:"name"`
//	}
//	if err := req.Bind(&payload); err != nil { ... }
//
//	// Input retrieval (query string + form or JSON body)
//	name := req.Input("name", "default")
//	all  := req.All()                      // map[string]string
//	some := req.Only("email", "password")  // present keys only
//
// The JSON body is put back after reading, so a route filter and the handler
// can both read it.
//
// # Flash
//
// Values flashed during one request are readable during the next one:
//
//	req.FlashErrors(v.Errors())
//	req.FlashOnly("email")
//
//	// next request
//	req.Old("email")
//	req.ValidationErrors().First("email")
//
// Without a session in the context the flash lives only as long as the Request.
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.Text(403, "access denied")
//	res.ValidationError(errs)     // 422 {"message": ..., "errors": {"field": ["msg"]}}
//	res.RedirectBack(r, "/fallback")
package http
