package testkit

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echo returns the request body on POST /echo and 404 elsewhere.
var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost || r.URL.Path != "/echo" {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		return
	}
	_, _ = io.Copy(w, r.Body)
})

func TestRun(t *testing.T) {
	Run(t, echo, "testdata/echo.json")
}

func TestLoadFileDefaultsMethod(t *testing.T) {
	steps, err := LoadFile("testdata/echo.json")
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "GET", steps[2].RequestMethod)
	assert.Equal(t, "POST", steps[0].RequestMethod)
}

func TestLoadFileRejectsIncompleteStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"x","requestUrl":"/"}]`), 0o644))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "expectedCode is required")
}

func TestLoadFileRejectsBodyAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	body := `[{"name":"x","requestUrl":"/","expectedCode":200,"requestBody":{},"requestFileName":"a.json"}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "exclusive")
}
