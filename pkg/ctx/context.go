// Package ctx provides a request context for API handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context:
//
//	func ShowInvoice(c *ctx.Context) {
//	    id := c.Param("id")
//	    c.OK("Invoice details for ID: "+id, invoice)
//	}
//
//	router.Get("/invoices/{id}", "invoices.show", ctx.Wrap(ShowInvoice))
package ctx

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/bizapi/pkg/bind"
	"github.com/shashiranjanraj/bizapi/pkg/logger"
	"github.com/shashiranjanraj/bizapi/pkg/response"
	"github.com/shashiranjanraj/bizapi/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return new(Context) },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/users/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Log logs msg at error level with the request-scoped logger.
func (c *Context) Log(msg string, args ...any) {
	logger.WithCtx(c.Context()).Error(msg, args...)
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and validates every field.
// On a malformed body it sends a 400 "Invalid JSON"; on schema violations a
// 400 "Validation Failed". Returns true only when dest is ready to use.
//
//	var input InvoiceInput
//	if !c.BindJSON(&input) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	return c.handleBind(bind.JSON(c.R, dest))
}

// BindPartialJSON is BindJSON for partial updates: absent fields are skipped.
func (c *Context) BindPartialJSON(dest any) bool {
	return c.handleBind(bind.PartialJSON(c.R, dest))
}

func (c *Context) handleBind(issues validate.Issues, err error) bool {
	if err != nil {
		response.InvalidJSON(c.W, err)
		return false
	}
	if validate.HasErrors(issues) {
		response.ValidationFailed(c.W, issues)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// OK sends a 200 envelope with data.
func (c *Context) OK(message string, data any) {
	response.OK(c.W, message, data)
}

// Created sends a 201 envelope with data.
func (c *Context) Created(message string, data any) {
	response.Created(c.W, message, data)
}

// Message sends an envelope carrying only a message.
func (c *Context) Message(code int, message string) {
	response.Message(c.W, code, message)
}

// Fail sends an envelope with a message and the error text.
func (c *Context) Fail(code int, message string, err error) {
	response.Fail(c.W, code, message, err)
}

// NotFound sends a 404 with the given message.
func (c *Context) NotFound(message string) {
	response.NotFound(c.W, message)
}

// DatabaseError logs err with attrs and sends a 500 "Database Error".
func (c *Context) DatabaseError(err error, attrs ...any) {
	c.Log("database error", append(attrs, "path", c.R.URL.Path, "error", err)...)
	response.DatabaseError(c.W, err)
}
