package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

// Run fires every step of one scenario file, in order, against handler.
// Each step becomes a t.Run subtest.
func Run(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	steps, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range steps {
		t.Run(s.Name, func(t *testing.T) {
			runStep(t, handler, s)
		})
	}
}

// RunDir runs every *.json file in dir as its own subtest. newHandler is
// called once per file so files never share state.
func RunDir(t *testing.T, newHandler func(t *testing.T) http.Handler, dir string) {
	t.Helper()

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(files) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}

	for _, path := range files {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		t.Run(name, func(t *testing.T) {
			Run(t, newHandler(t), path)
		})
	}
}

func runStep(t *testing.T, handler http.Handler, s *Scenario) {
	t.Helper()

	data, err := s.body()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)

	expected, err := s.expected()
	if err != nil {
		t.Errorf("[%s] read expected body: %v", s.Name, err)
		return
	}
	AssertJSONBody(t, s, expected, rec.Body.Bytes())
}
