package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bizapi/pkg/response"
	"github.com/shashiranjanraj/bizapi/pkg/validate"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOKKeepsEmptyList(t *testing.T) {
	rec := httptest.NewRecorder()
	response.OK(rec, "List of Invoices", []string{})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"List of Invoices","data":[]}`, rec.Body.String())
}

func TestMessageOnly(t *testing.T) {
	rec := httptest.NewRecorder()
	response.NotFound(rec, "Invoice not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Invoice not found"}`, rec.Body.String())
}

func TestValidationFailed(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationFailed(rec, validate.Issues{validate.NewIssue("Amount", "Required")})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Validation Failed", body["message"])
	issues := body["errors"].([]interface{})
	require.Len(t, issues, 1)
	assert.Equal(t, []interface{}{"Amount"}, issues[0].(map[string]interface{})["path"])
}

func TestDatabaseError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.DatabaseError(rec, errors.New("disk I/O error"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Database Error","error":"disk I/O error"}`, rec.Body.String())
}
