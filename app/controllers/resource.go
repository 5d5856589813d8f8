// Package controllers holds the HTTP handlers of the API resources.
//
// Every resource is served by one generic Resource controller. A resource
// only declares its input structs, how a create body becomes a row and its
// display names.
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/bizapi/app/repositories"
	"github.com/shashiranjanraj/bizapi/pkg/ctx"
	"github.com/shashiranjanraj/bizapi/pkg/metrics"
	"github.com/shashiranjanraj/bizapi/pkg/patch"
)

// Resource serves list, show, create, replace, patch and delete for rows of
// type T. C is the create body; U is the update body, validated in full for
// PUT and partially for PATCH.
type Resource[T any, C any, U any] struct {
	// Name is the singular display name, e.g. "Invoice".
	Name string
	// Plural is used by the list message, e.g. "Invoices".
	Plural string
	Repo   *repositories.Repository[T]
	// Build turns a validated create body into a row.
	Build func(in *C) (*T, error)
	// Extra returns assignments the update body cannot express through its
	// column descriptors, such as a hashed password. Optional.
	Extra func(in *U) (patch.Set, error)
}

// Index handles GET /.
func (r *Resource[T, C, U]) Index(c *ctx.Context) {
	rows, err := r.Repo.All(c.Context())
	if err != nil {
		c.Log("list failed", "resource", r.Name, "error", err)
		c.Fail(http.StatusInternalServerError, "Error fetching "+strings.ToLower(r.Plural), err)
		metrics.ResourceFailed(r.Name, "list", "database")
		return
	}
	c.OK("List of "+r.Plural, rows)
}

// Show handles GET /{id}.
func (r *Resource[T, C, U]) Show(c *ctx.Context) {
	id := c.Param("id")
	row, err := r.Repo.Find(c.Context(), id)
	if err != nil {
		r.fail(c, "show", err)
		return
	}
	c.OK(r.Name+" details for ID: "+id, row)
}

// Store handles POST /.
func (r *Resource[T, C, U]) Store(c *ctx.Context) {
	var in C
	if !c.BindJSON(&in) {
		return
	}

	row, err := r.Build(&in)
	if err != nil {
		c.Log("build row failed", "resource", r.Name, "error", err)
		c.Fail(http.StatusInternalServerError, "Failed to create "+r.lower(), err)
		return
	}

	created, err := r.Repo.Create(c.Context(), row)
	if err != nil {
		r.fail(c, "create", err)
		return
	}
	c.Created(r.Name+" created", created)
}

// Replace handles PUT /{id}. Every field of U is written; absent optional
// fields become NULL.
func (r *Resource[T, C, U]) Replace(c *ctx.Context) {
	var in U
	if !c.BindJSON(&in) {
		return
	}
	r.update(c, &in, patch.All(&in))
}

// Patch handles PATCH /{id}. Only the fields present in the body are written.
func (r *Resource[T, C, U]) Patch(c *ctx.Context) {
	var in U
	if !c.BindPartialJSON(&in) {
		return
	}

	set, err := patch.Collect(&in)
	if err != nil && !errors.Is(err, patch.ErrNoFields) {
		r.fail(c, "update", err)
		return
	}
	r.update(c, &in, set)
}

func (r *Resource[T, C, U]) update(c *ctx.Context, in *U, set patch.Set) {
	if r.Extra != nil {
		extra, err := r.Extra(in)
		if err != nil {
			c.Log("build update failed", "resource", r.Name, "error", err)
			c.Fail(http.StatusInternalServerError, "Failed to update "+r.lower(), err)
			return
		}
		set = append(set, extra...)
	}

	updated, err := r.Repo.Update(c.Context(), c.Param("id"), set)
	if err != nil {
		r.fail(c, "update", err)
		return
	}
	c.OK(r.Name+" updated", updated)
}

// Destroy handles DELETE /{id}.
func (r *Resource[T, C, U]) Destroy(c *ctx.Context) {
	if err := r.Repo.Delete(c.Context(), c.Param("id")); err != nil {
		r.fail(c, "delete", err)
		return
	}
	c.Message(http.StatusOK, r.Name+" deleted")
}

// fail maps a repository error onto the response envelope.
func (r *Resource[T, C, U]) fail(c *ctx.Context, op string, err error) {
	reason := "database"
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		reason = "not_found"
		c.NotFound(r.Name + " not found")
	case errors.Is(err, patch.ErrNoFields):
		reason = "no_fields"
		c.Message(http.StatusBadRequest, "No fields to update")
	case errors.Is(err, repositories.ErrDuplicate):
		reason = "duplicate"
		c.Message(http.StatusConflict, r.Name+" already exists")
	case errors.Is(err, repositories.ErrNoRowsAffected):
		reason = "no_rows"
		c.Message(http.StatusInternalServerError, "Failed to "+op+" "+r.lower())
	default:
		c.DatabaseError(err, "resource", r.Name, "op", op)
	}
	metrics.ResourceFailed(r.Name, op, reason)
}

func (r *Resource[T, C, U]) lower() string {
	return strings.ToLower(r.Name)
}
