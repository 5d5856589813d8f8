// Package testkit drives REST API tests from JSON scenario files.
//
// A scenario file holds an ordered list of steps fired against one handler,
// so later steps see the rows earlier steps created:
//
//	[
//	  {"name": "create", "requestMethod": "POST", "requestUrl": "/api/roles",
//	   "requestBody": {"name": "admin"}, "expectedCode": 201,
//	   "expectedBody": {"message": "Role created", "data": {"id": 1, "name": "admin"}}},
//	  {"name": "missing", "requestUrl": "/api/roles/9", "expectedCode": 404}
//	]
//
// Scenario files live next to the *_test.go files that run them:
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunDir(t, newHandler, "testdata/scenarios")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario describes one request and the response it must produce.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod string            `json:"requestMethod"` // defaults to GET
	RequestURL    string            `json:"requestUrl"`
	RequestBody   json.RawMessage   `json:"requestBody"`     // sent verbatim
	RequestFile   string            `json:"requestFileName"` // relative to the scenario file
	Headers       map[string]string `json:"headers"`

	ExpectedCode int             `json:"expectedCode"`
	ExpectedBody json.RawMessage `json:"expectedBody"`     // compared as JSON when set
	ResponseFile string          `json:"responseFileName"` // relative to the scenario file

	dir string
}

// LoadFile reads the ordered steps of one scenario file.
func LoadFile(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var steps []*Scenario
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	for i, s := range steps {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: %q step %d: %w", abs, i, err)
		}
		s.dir = filepath.Dir(abs)
	}
	return steps, nil
}

// validate performs basic sanity checks on a loaded step.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	if len(s.RequestBody) > 0 && s.RequestFile != "" {
		return fmt.Errorf("requestBody and requestFileName are exclusive")
	}
	return nil
}

// body returns the request body bytes, or nil when the step sends none.
func (s *Scenario) body() ([]byte, error) {
	if len(s.RequestBody) > 0 {
		return s.RequestBody, nil
	}
	if s.RequestFile == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.RequestFile))
}

// expected returns the expected response body, or nil when it is not checked.
func (s *Scenario) expected() ([]byte, error) {
	if len(s.ExpectedBody) > 0 {
		return s.ExpectedBody, nil
	}
	if s.ResponseFile == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.ResponseFile))
}

func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
