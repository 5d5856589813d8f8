package ctx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	appctx "github.com/shashiranjanraj/bizapi/pkg/ctx"
)

type roleInput struct {
	Name *string `json:"name" validate:"required,min=1"`
}

func serve(h appctx.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	appctx.Wrap(h)(rec, req)
	return rec
}

func TestOK(t *testing.T) {
	rec := serve(func(c *appctx.Context) {
		c.OK("List of Roles", []int{})
	}, http.MethodGet, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"List of Roles","data":[]}`, rec.Body.String())
}

func TestParam(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/roles/{id}", appctx.Wrap(func(c *appctx.Context) {
		c.Message(http.StatusOK, "id="+c.Param("id"))
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roles/7", nil))
	assert.JSONEq(t, `{"message":"id=7"}`, rec.Body.String())
}

func TestBindJSONValid(t *testing.T) {
	called := false
	serve(func(c *appctx.Context) {
		var in roleInput
		if !c.BindJSON(&in) {
			t.Error("expected BindJSON to succeed")
			return
		}
		called = true
		assert.Equal(t, "admin", *in.Name)
	}, http.MethodPost, `{"name":"admin"}`)
	assert.True(t, called)
}

func TestBindJSONValidationFailed(t *testing.T) {
	rec := serve(func(c *appctx.Context) {
		var in roleInput
		assert.False(t, c.BindJSON(&in))
	}, http.MethodPost, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Validation Failed"`)
	assert.Contains(t, rec.Body.String(), `"path":["name"]`)
}

func TestBindJSONMalformed(t *testing.T) {
	rec := serve(func(c *appctx.Context) {
		var in roleInput
		assert.False(t, c.BindJSON(&in))
	}, http.MethodPost, `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Invalid JSON"`)
}

func TestBindPartialJSONAllowsEmpty(t *testing.T) {
	serve(func(c *appctx.Context) {
		var in roleInput
		assert.True(t, c.BindPartialJSON(&in))
		assert.Nil(t, in.Name)
	}, http.MethodPatch, `{}`)
}

func TestDatabaseError(t *testing.T) {
	rec := serve(func(c *appctx.Context) {
		c.DatabaseError(errors.New("locked"))
	}, http.MethodGet, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Database Error","error":"locked"}`, rec.Body.String())
}
